// Package cache provides the key-value cache capability backed by Redis.
//
// A Store with a nil client degrades gracefully: reads report a miss and
// writes are no-ops, so the application keeps working against the database
// when Redis is unavailable.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent, expired, or the cache is
// not configured.
var ErrCacheMiss = errors.New("cache miss")

// Store is a thin wrapper over a Redis client exposing the operations the
// application needs: get, set with TTL, delete, and an atomic take-delete.
type Store struct {
	rdb *redis.Client
}

// NewStore creates a Store. A nil client is allowed and produces a
// degraded, always-miss store.
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the value stored under key, or ErrCacheMiss.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.rdb == nil {
		return "", ErrCacheMiss
	}
	v, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return v, nil
}

// Set stores value under key with the given TTL. Best effort when the cache
// is not configured.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Del removes the given keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if s.rdb == nil || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// TakeDel atomically reads and deletes key (GETDEL), so a value can be
// claimed by exactly one caller. Returns ErrCacheMiss if the key is absent.
func (s *Store) TakeDel(ctx context.Context, key string) (string, error) {
	if s.rdb == nil {
		return "", ErrCacheMiss
	}
	v, err := s.rdb.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return v, nil
}
