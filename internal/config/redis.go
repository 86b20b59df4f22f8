package config

// Redis backs the refresh-token cache. The cache entry is the sole source
// of truth for refresh-token validity, so unlike optional middleware
// concerns the caller should treat a nil client as a startup failure.

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client from environment variables:
//
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_PASSWORD            – optional password
//	REDIS_DB                  – database number (default 0)
//
// The connection is verified with a short ping; nil is returned on failure.
func NewRedisClient() *redis.Client {
	host := getenv("REDIS_HOST", "localhost")
	port := getenv("REDIS_PORT", "6379")

	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
