// Package adapters provides the repository implementations for the contacts feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/usecase"
)

// contactPostgres is the GORM-backed implementation of ContactRepository.
type contactPostgres struct {
	db *gorm.DB
}

// Compile-time check that contactPostgres implements ContactRepository.
var _ usecase.ContactRepository = (*contactPostgres)(nil)

// NewContactPostgres creates a new contactPostgres with the given gorm.DB
// connection. Constructor for dependency injection.
func NewContactPostgres(db *gorm.DB) *contactPostgres {
	return &contactPostgres{db: db}
}

// Create adds a contact to the database.
func (r *contactPostgres) Create(ctx context.Context, c *entity.Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// FindByIDAndOwner retrieves a contact by id and owner. A contact owned by
// someone else reports the same not-found as a missing one.
func (r *contactPostgres) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Contact, error) {
	var c entity.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Search lists the owner's contacts, filtered by a case-insensitive
// substring over first name, last name and email when q is non-empty.
// LOWER/LIKE is used instead of ILIKE so the query also runs on the sqlite
// database the tests use.
func (r *contactPostgres) Search(ctx context.Context, ownerID uint, q string, skip, limit int) ([]entity.Contact, error) {
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var out []entity.Contact
	err := tx.Order("id").Offset(skip).Limit(limit).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists changes to an existing contact.
func (r *contactPostgres) Save(ctx context.Context, c *entity.Contact) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a contact scoped to its owner. Returns
// usecase.ErrContactNotFound when nothing matched.
func (r *contactPostgres) Delete(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entity.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}

// ListByOwner returns all of the owner's contacts.
func (r *contactPostgres) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Contact, error) {
	var out []entity.Contact
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
