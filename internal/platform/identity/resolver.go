// Package identity implements the authorization gate: it resolves the caller
// from a bearer token, caching a denormalized user snapshot in Redis, and
// exposes a role guard for privileged routes.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/cache"
)

// User roles. Role checks are exact, case-sensitive string matches.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// snapshotTTL is how long a cached identity snapshot is served before the
// store is consulted again. Snapshots are never actively invalidated on user
// update, so a role change can be masked for up to this long.
const snapshotTTL = time.Hour

var (
	// ErrUnauthorized is returned when the bearer token does not validate.
	ErrUnauthorized = errors.New("could not validate credentials")

	// ErrUserNotFound is returned when the token is valid but its subject
	// no longer exists in the store.
	ErrUserNotFound = errors.New("user not found")
)

// Snapshot is the cached projection of a user used for request authorization.
type Snapshot struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// TokenVerifier validates access tokens.
// Following Go convention: interfaces are defined by the consumer, not the provider.
type TokenVerifier interface {
	Verify(token string) (subject, jti string, err error)
}

// UserSource loads identity snapshots from the store. Implementations return
// ErrUserNotFound when no user exists for the id.
type UserSource interface {
	FindByID(ctx context.Context, id uint) (*Snapshot, error)
}

// Resolver resolves bearer tokens into identity snapshots, cache-first.
type Resolver struct {
	tokens TokenVerifier
	users  UserSource
	cache  *cache.Store
}

// NewResolver creates a Resolver.
func NewResolver(tokens TokenVerifier, users UserSource, store *cache.Store) *Resolver {
	return &Resolver{tokens: tokens, users: users, cache: store}
}

// SnapshotKey returns the cache key for a user's identity snapshot.
func SnapshotKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Resolve verifies the token and returns the caller's snapshot. The cache is
// consulted before the store; cache errors count as misses so an unreachable
// Redis degrades to store lookups instead of failing the request.
func (r *Resolver) Resolve(ctx context.Context, tokenStr string) (*Snapshot, error) {
	sub, _, err := r.tokens.Verify(tokenStr)
	if err != nil {
		return nil, ErrUnauthorized
	}
	id64, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, ErrUnauthorized
	}
	id := uint(id64)

	key := SnapshotKey(id)
	if raw, err := r.cache.Get(ctx, key); err == nil {
		var snap Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			return &snap, nil
		}
		// Delete corrupted cache entry
		_ = r.cache.Del(ctx, key)
	}

	snap, err := r.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Write back, best effort
	if b, err := json.Marshal(snap); err == nil {
		_ = r.cache.Set(ctx, key, string(b), snapshotTTL)
	}
	return snap, nil
}
