// Package cache stores refresh-token hashes in Redis. The cache entry is
// the sole source of truth for refresh-token validity: deleting it logs
// the session out, and rotation replaces it atomically from the caller's
// point of view.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache wraps a Redis client with the small surface the auth service
// needs.
type TokenCache struct{ rdb *redis.Client }

func NewTokenCache(rdb *redis.Client) *TokenCache { return &TokenCache{rdb: rdb} }

// Set stores value under key with the given TTL.
func (c *TokenCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get returns the value under key. The second return is false when the key
// is absent or expired.
func (c *TokenCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

// Del removes key. Deleting a missing key is not an error.
func (c *TokenCache) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
