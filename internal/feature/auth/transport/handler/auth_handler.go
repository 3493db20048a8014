// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/api"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/transport/http/dto"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/usecase"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

// AuthUsecase defines the authentication operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, email, password, fullName string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	SetDefaultAvatar(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler handles the HTTP requests of the auth feature.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
// Returns 201 with the user projection, 400 on validation failure and 409
// when the email is already registered.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register conflict", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "user already exists"})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "registration failed"})
		return
	}
	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Login handles POST /auth/login. The credentials arrive as form fields
// (username carries the email). Returns 200 with a bearer token or 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	tok, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		// One rejection for unknown email and wrong password alike.
		slog.Warn("login failed", "email", form.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "incorrect email or password"})
		return
	}
	slog.Info("user login successful", "email", form.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: tok, TokenType: "bearer"})
}

// VerifyEmail handles GET /auth/verify?token=.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid token"})
		return
	}
	if err := h.auth.VerifyEmail(c.Request.Context(), tokenStr); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		case errors.Is(err, usecase.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid token"})
		default:
			slog.Error("email verification failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "verification failed"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Detail: "email verified"})
}

// PasswordResetRequest handles POST /auth/password-reset-request.
// The response is identical whether or not the email belongs to an account.
func (h *AuthHandler) PasswordResetRequest(c *gin.Context) {
	var req dto.ResetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		slog.Error("password reset request failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "reset request failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Detail: "check your email for reset link"})
}

// PasswordReset handles POST /auth/password-reset.
// Forged, expired and already-used tokens all yield the same 400 class.
func (h *AuthHandler) PasswordReset(c *gin.Context) {
	var req dto.ResetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid or expired token"})
		case errors.Is(err, usecase.ErrTokenUsed):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "token invalid or used"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			slog.Error("password reset failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "reset failed"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Detail: "password updated successfully"})
}

// Me handles GET /auth/me, returning the caller's identity snapshot.
func (h *AuthHandler) Me(c *gin.Context) {
	snap := identity.FromContext(c)
	if snap == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SetDefaultAvatar handles POST /auth/users/:id/avatar-default. Admin only.
func (h *AuthHandler) SetDefaultAvatar(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return
	}
	if _, err := h.auth.SetDefaultAvatar(c.Request.Context(), uint(id64)); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("default avatar reset failed", "user_id", id64, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "avatar update failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Detail: fmt.Sprintf("avatar for user %d set to default", id64)})
}
