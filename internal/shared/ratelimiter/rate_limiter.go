// Package ratelimiter implements the fixed-window rate limiter capability.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another request is allowed for a key within the
// current fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// entry is a per-key fixed-window counter.
type entry struct {
	windowStart time.Time
	count       int
}

// Memory is a process-local fixed-window limiter.
type Memory struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry
	now     func() time.Time
}

// NewMemory creates an in-memory limiter allowing limit calls per window.
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		window:  window,
		entries: map[string]*entry{},
		now:     time.Now,
	}
}

// Allow reports whether the call is within the key's window budget. When the
// window has elapsed the counter is reset to 1 on the triggering call.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.entries[key]
	if !ok || now.Sub(e.windowStart) > m.window {
		m.entries[key] = &entry{windowStart: now, count: 1}
		return true, nil
	}
	if e.count >= m.limit {
		return false, nil
	}
	e.count++
	return true, nil
}

// Redis is a fixed-window limiter sharing its counters through Redis, so the
// limit holds across processes.
type Redis struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedis creates a Redis-backed limiter allowing limit calls per window.
func NewRedis(rdb *redis.Client, limit int, window time.Duration, prefix string) *Redis {
	return &Redis{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow increments the key's window counter; the first call in a window also
// arms the window expiry.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + ":" + key
	n, err := r.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := r.rdb.Expire(ctx, k, r.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(r.limit), nil
}
