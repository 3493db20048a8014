// Package handler provides HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/api"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	authdto "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/transport/http/dto"
	authusecase "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/usecase"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

// UsersUsecase abstracts the profile operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UsersUsecase interface {
	GetByID(ctx context.Context, id uint) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID uint, file io.Reader) (*entity.User, error)
}

// UserHandler handles HTTP requests for the current user's profile.
type UserHandler struct {
	uc UsersUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(uc UsersUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me returns the authenticated user's stored profile.
// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	ident := identity.FromContext(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	user, err := h.uc.GetByID(c.Request.Context(), ident.ID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserResponse(user))
}

// UploadAvatar accepts a multipart image, stores it on the image host and
// returns the updated profile.
// POST /users/me/avatar
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	ident := identity.FromContext(c)
	if ident == nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not read file"})
		return
	}
	defer file.Close()

	user, err := h.uc.UpdateAvatar(c.Request.Context(), ident.ID, file)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "avatar upload failed"})
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserResponse(user))
}
