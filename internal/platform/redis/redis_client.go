// Package redis creates the Redis client used for caching, reset markers
// and rate-limit counters.
package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using REDIS_URL, falling back to
// REDIS_HOST/REDIS_PORT/REDIS_PASSWORD. It pings the server before
// returning.
func NewRedisClient() (*redis.Client, error) {
	var rdb *redis.Client

	if url := os.Getenv("REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			slog.Error("invalid REDIS_URL", "error", err)
			return nil, err
		}
		rdb = redis.NewClient(opts)
	} else {
		addr := os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT")
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
	}

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", rdb.Options().Addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", rdb.Options().Addr)
	return rdb, nil
}
