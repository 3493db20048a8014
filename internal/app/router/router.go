// Package router wires HTTP routes to their handlers.
package router

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/transport/handler"
	contacthandler "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/transport/handler"
	userhandler "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/users/transport/handler"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/http/handler"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/shared/ratelimiter"
)

// NewRouter builds the gin engine with all application routes.
func NewRouter(resolver *identity.Resolver, limiter ratelimiter.Limiter,
	authHandler *authhandler.AuthHandler, contactHandler *contacthandler.ContactHandler,
	userHandler *userhandler.UserHandler) *gin.Engine {
	r := gin.Default()

	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = []string{origin}
		cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
		r.Use(cors.New(cfg))
	}

	// No authentication required.
	r.GET("/healthz", handler.Health)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/verify", authHandler.VerifyEmail)
	r.POST("/auth/password-reset-request", authHandler.PasswordResetRequest)
	r.POST("/auth/password-reset", authHandler.PasswordReset)

	// Routes below require a valid bearer token.
	authRequired := identity.Middleware(resolver)

	auth := r.Group("/auth")
	auth.Use(authRequired)
	{
		auth.GET("/me", authHandler.Me)
		// Admin only.
		auth.POST("/users/:id/avatar-default",
			identity.RequireRole(identity.RoleAdmin), authHandler.SetDefaultAvatar)
	}

	contacts := r.Group("/contacts")
	contacts.Use(authRequired)
	{
		contacts.POST("", contactHandler.Create)
		contacts.GET("", contactHandler.List)
		contacts.GET("/upcoming-birthdays", contactHandler.UpcomingBirthdays)
		contacts.GET("/:id", contactHandler.Get)
		contacts.PUT("/:id", contactHandler.Update)
		contacts.DELETE("/:id", contactHandler.Delete)
	}

	users := r.Group("/users")
	users.Use(authRequired)
	{
		// /users/me is rate limited per user.
		users.GET("/me", ratelimiter.Middleware(limiter, rateLimitKey), userHandler.Me)
		users.POST("/me/avatar", userHandler.UploadAvatar)
	}

	return r
}

// rateLimitKey keys rate limit counters by the authenticated user's id.
func rateLimitKey(c *gin.Context) string {
	if ident := identity.FromContext(c); ident != nil {
		return fmt.Sprintf("%d", ident.ID)
	}
	return ""
}
