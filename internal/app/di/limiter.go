// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/shared/ratelimiter"
)

const (
	rateLimitRequests = 5
	rateLimitWindow   = time.Minute
)

// NewLimiter creates the request rate limiter.
// If Redis is available, counters are shared across instances.
// Otherwise, it falls back to an in-process limiter.
func NewLimiter(rdb *redis.Client) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedis(rdb, rateLimitRequests, rateLimitWindow, "ratelimit")
	}
	return ratelimiter.NewMemory(rateLimitRequests, rateLimitWindow)
}
