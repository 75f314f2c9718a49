package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// Keys never expire: a link is as durable as the Redis persistence configuration.
type RedisStore struct {
	client *redis.Client
	prefix string // "link:" for code -> target url
}

// NewRedisStore creates a new Redis-backed link store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "link:",
	}
}

// Insert uses SETNX so that only one writer can claim a code.
func (r *RedisStore) Insert(ctx context.Context, link *shortener.Link) error {
	created, err := r.client.SetNX(ctx, r.prefix+string(link.Code), link.TargetURL, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", shortener.ErrStoreUnavailable, err)
	}

	if !created {
		return shortener.ErrDuplicateCode
	}

	return nil
}

func (r *RedisStore) Lookup(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	target, err := r.client.Get(ctx, r.prefix+string(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", shortener.ErrStoreUnavailable, err)
	}

	return &shortener.Link{Code: code, TargetURL: target}, nil
}

var _ shortener.Repository = (*RedisStore)(nil)
