// Package dto defines data transfer objects for the contacts feature's HTTP transport layer.
package dto

import (
	"time"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/usecase"
)

// birthdayLayout is the wire format for birthday fields.
const birthdayLayout = "2006-01-02"

// ContactCreateReq represents the body for creating a contact.
type ContactCreateReq struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Birthday  string `json:"birthday" binding:"required,datetime=2006-01-02"`
	ExtraData string `json:"extra_data"`
}

// ToEntity converts the request into a contact entity.
func (r ContactCreateReq) ToEntity() (*entity.Contact, error) {
	bd, err := time.Parse(birthdayLayout, r.Birthday)
	if err != nil {
		return nil, err
	}
	return &entity.Contact{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Birthday:  bd,
		ExtraData: r.ExtraData,
	}, nil
}

// ContactUpdateReq represents the body for a partial contact update.
// Absent fields are left unchanged.
type ContactUpdateReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Birthday  *string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	ExtraData *string `json:"extra_data"`
}

// ToUpdate converts the request into a usecase update.
func (r ContactUpdateReq) ToUpdate() (usecase.ContactUpdate, error) {
	upd := usecase.ContactUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		ExtraData: r.ExtraData,
	}
	if r.Birthday != nil {
		bd, err := time.Parse(birthdayLayout, *r.Birthday)
		if err != nil {
			return usecase.ContactUpdate{}, err
		}
		upd.Birthday = &bd
	}
	return upd, nil
}

// ContactResponse is the contact projection returned by the API.
type ContactResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	ExtraData string `json:"extra_data,omitempty"`
}

// NewContactResponse builds a ContactResponse from a contact entity.
func NewContactResponse(c *entity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday.Format(birthdayLayout),
		ExtraData: c.ExtraData,
	}
}

// NewContactResponses maps a slice of entities into responses.
func NewContactResponses(contacts []entity.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}
