package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// RedisCache keeps recently resolved links in Redis. Links are immutable, so entries
// never need invalidation; the TTL only bounds memory use.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a link cache. A zero ttl keeps entries until Redis evicts them.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "cache:link:",
		ttl:    ttl,
	}
}

// Get returns the cached link or shortener.ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	target, err := c.client.Get(ctx, c.prefix+string(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &shortener.Link{Code: code, TargetURL: target}, nil
}

// Set stores link in the cache.
func (c *RedisCache) Set(ctx context.Context, link *shortener.Link) error {
	return c.client.Set(ctx, c.prefix+string(link.Code), link.TargetURL, c.ttl).Err()
}

// LinkCache is the cache used by CachedRepository.
type LinkCache interface {
	Get(ctx context.Context, code shortener.Code) (*shortener.Link, error)
	Set(ctx context.Context, link *shortener.Link) error
}

// CachedRepository wraps a Repository with a read-through cache.
// Inserts go straight to the underlying store; the cache is filled on lookup misses
// and by the link.created cache warmer.
type CachedRepository struct {
	store  shortener.Repository
	cache  LinkCache
	logger *zap.Logger
}

// NewCachedRepository creates a new read-through repository decorator.
func NewCachedRepository(store shortener.Repository, cache LinkCache, logger *zap.Logger) *CachedRepository {
	return &CachedRepository{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (r *CachedRepository) Insert(ctx context.Context, link *shortener.Link) error {
	return r.store.Insert(ctx, link)
}

// Lookup checks the cache first. Cache faults are treated as misses.
func (r *CachedRepository) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	link, err := r.cache.Get(ctx, code)
	if err == nil {
		return link, nil
	}

	if !errors.Is(err, shortener.ErrNotFound) {
		r.logger.Warn("link cache read failed", zap.String("code", string(code)), zap.Error(err))
	}

	link, err = r.store.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, link); err != nil {
		r.logger.Warn("link cache write failed", zap.String("code", string(code)), zap.Error(err))
	}

	return link, nil
}

var _ shortener.Repository = (*CachedRepository)(nil)
