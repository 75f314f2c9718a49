package events

import (
	"context"
	"fmt"

	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/shortener"
)

// CacheWriter stores a resolved link in a read cache.
type CacheWriter interface {
	Set(ctx context.Context, link *shortener.Link) error
}

// NewCacheWarmer returns a handler that primes the link cache from LinkCreated events,
// so the first redirect for a new link is served without a store round-trip.
func NewCacheWarmer(cache CacheWriter) messaging.Handler[LinkCreated] {
	return func(ctx context.Context, event *LinkCreated) error {
		if event.Code == "" || event.TargetURL == "" {
			return fmt.Errorf("%w: link created event without code or target", messaging.ErrSkip)
		}

		return cache.Set(ctx, &shortener.Link{
			Code:      shortener.Code(event.Code),
			TargetURL: event.TargetURL,
		})
	}
}
