// Package handler provides the HTTP handlers for the contacts feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/api"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/transport/http/dto"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/usecase"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

// defaultBirthdayDays is the default look-ahead for the birthday query.
const defaultBirthdayDays = 7

// ContactsUsecase defines the contact operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ContactsUsecase interface {
	Create(ctx context.Context, ownerID uint, contact *entity.Contact) error
	Get(ctx context.Context, id, ownerID uint) (*entity.Contact, error)
	Search(ctx context.Context, ownerID uint, q string, skip, limit int) ([]entity.Contact, error)
	Update(ctx context.Context, id, ownerID uint, upd usecase.ContactUpdate) (*entity.Contact, error)
	Delete(ctx context.Context, id, ownerID uint) error
	UpcomingBirthdays(ctx context.Context, ownerID uint, days int) ([]entity.Contact, error)
}

// ContactHandler handles the HTTP requests of the contacts feature. All
// routes run behind the identity middleware.
type ContactHandler struct {
	contacts ContactsUsecase
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts ContactsUsecase) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// owner returns the caller's user id from the identity snapshot.
func owner(c *gin.Context) (uint, bool) {
	snap := identity.FromContext(c)
	if snap == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
		return 0, false
	}
	return snap.ID, true
}

// Create handles POST /contacts/.
func (h *ContactHandler) Create(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var req dto.ContactCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	contact, err := req.ToEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.contacts.Create(c.Request.Context(), ownerID, contact); err != nil {
		slog.Error("contact create failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "contact create failed"})
		return
	}
	c.JSON(http.StatusCreated, dto.NewContactResponse(contact))
}

// List handles GET /contacts/?q=&skip=&limit=.
func (h *ContactHandler) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultLimit)))

	contacts, err := h.contacts.Search(c.Request.Context(), ownerID, c.Query("q"), skip, limit)
	if err != nil {
		slog.Error("contact search failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "contact search failed"})
		return
	}
	c.JSON(http.StatusOK, dto.NewContactResponses(contacts))
}

// Get handles GET /contacts/:id.
func (h *ContactHandler) Get(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, err := contactID(c)
	if err != nil {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		h.renderError(c, ownerID, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Update handles PUT /contacts/:id with a partial body.
func (h *ContactHandler) Update(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, err := contactID(c)
	if err != nil {
		return
	}

	var req dto.ContactUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	upd, err := req.ToUpdate()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), id, ownerID, upd)
	if err != nil {
		h.renderError(c, ownerID, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactResponse(contact))
}

// Delete handles DELETE /contacts/:id.
func (h *ContactHandler) Delete(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	id, err := contactID(c)
	if err != nil {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), id, ownerID); err != nil {
		h.renderError(c, ownerID, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpcomingBirthdays handles GET /contacts/upcoming-birthdays?days=.
func (h *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	days := defaultBirthdayDays
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			days = n
		}
	}

	contacts, err := h.contacts.UpcomingBirthdays(c.Request.Context(), ownerID, days)
	if err != nil {
		slog.Error("birthday query failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "birthday query failed"})
		return
	}
	c.JSON(http.StatusOK, dto.NewContactResponses(contacts))
}

// contactID parses the :id route parameter, responding 400 on failure.
func contactID(c *gin.Context) (uint, error) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid contact id"})
		return 0, err
	}
	return uint(id64), nil
}

// renderError maps usecase errors onto HTTP statuses.
func (h *ContactHandler) renderError(c *gin.Context, ownerID uint, err error) {
	if errors.Is(err, usecase.ErrContactNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "contact not found"})
		return
	}
	slog.Error("contact operation failed", "owner_id", ownerID, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "contact operation failed"})
}
