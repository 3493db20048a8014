package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/api"
)

// ContextIdentity is the gin context key under which the resolved snapshot
// is stored.
const ContextIdentity = "identity"

// Middleware returns a gin middleware that requires a valid bearer token,
// resolves the caller through the gate and stores the snapshot in the
// request context.
func Middleware(r *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		snap, err := r.Resolve(c.Request.Context(), tokenStr)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(ContextIdentity, snap)
		c.Next()
	}
}

// RequireRole returns a gin middleware that rejects callers whose resolved
// role does not exactly match the required role. It must run after
// Middleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := FromContext(c)
		if snap == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		if snap.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: fmt.Sprintf("%s privileges required", role)})
			return
		}
		c.Next()
	}
}

// FromContext returns the snapshot stored by Middleware, or nil.
func FromContext(c *gin.Context) *Snapshot {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	snap, _ := v.(*Snapshot)
	return snap
}
