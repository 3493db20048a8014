// Package usecase implements the business logic for the contacts feature.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/contacts/domain/entity"
)

// ErrContactNotFound is returned when a contact does not exist or belongs
// to another owner. The two cases are indistinguishable on purpose.
var ErrContactNotFound = errors.New("contact not found")

// Default paging for contact search.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ContactRepository abstracts the persistence layer for contact entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ContactRepository interface {
	// Create persists a new contact.
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByIDAndOwner retrieves a contact by id scoped to its owner.
	// Returns ErrContactNotFound on a miss or an owner mismatch.
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*entity.Contact, error)

	// Search lists the owner's contacts, optionally filtered by a
	// case-insensitive substring over first name, last name and email.
	Search(ctx context.Context, ownerID uint, q string, skip, limit int) ([]entity.Contact, error)

	// Save persists changes to an existing contact.
	Save(ctx context.Context, contact *entity.Contact) error

	// Delete removes a contact scoped to its owner.
	// Returns ErrContactNotFound when nothing was deleted.
	Delete(ctx context.Context, id, ownerID uint) error

	// ListByOwner returns all of the owner's contacts.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Contact, error)
}

// ContactUpdate carries a partial update: nil fields are left unchanged.
type ContactUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Birthday  *time.Time
	ExtraData *string
}

// ContactsUsecase provides the contact operations, all scoped to an owner.
type ContactsUsecase struct {
	repo ContactRepository
	now  func() time.Time
}

// NewContactsUsecase creates a new ContactsUsecase with the given repository.
func NewContactsUsecase(r ContactRepository) *ContactsUsecase {
	return &ContactsUsecase{repo: r, now: time.Now}
}

// Create stores a new contact for the owner.
func (u *ContactsUsecase) Create(ctx context.Context, ownerID uint, contact *entity.Contact) error {
	contact.OwnerID = ownerID
	return u.repo.Create(ctx, contact)
}

// Get returns one of the owner's contacts by id.
func (u *ContactsUsecase) Get(ctx context.Context, id, ownerID uint) (*entity.Contact, error) {
	return u.repo.FindByIDAndOwner(ctx, id, ownerID)
}

// Search lists the owner's contacts matching q, with paging.
func (u *ContactsUsecase) Search(ctx context.Context, ownerID uint, q string, skip, limit int) ([]entity.Contact, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return u.repo.Search(ctx, ownerID, q, skip, limit)
}

// Update applies a partial update to one of the owner's contacts and
// returns the result.
func (u *ContactsUsecase) Update(ctx context.Context, id, ownerID uint, upd ContactUpdate) (*entity.Contact, error) {
	contact, err := u.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		contact.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		contact.LastName = *upd.LastName
	}
	if upd.Email != nil {
		contact.Email = *upd.Email
	}
	if upd.Phone != nil {
		contact.Phone = *upd.Phone
	}
	if upd.Birthday != nil {
		contact.Birthday = *upd.Birthday
	}
	if upd.ExtraData != nil {
		contact.ExtraData = *upd.ExtraData
	}

	if err := u.repo.Save(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes one of the owner's contacts.
func (u *ContactsUsecase) Delete(ctx context.Context, id, ownerID uint) error {
	return u.repo.Delete(ctx, id, ownerID)
}

// UpcomingBirthdays returns the owner's contacts whose birthday falls on
// any of the next days calendar days, today inclusive, ignoring the year.
//
// The match set is built by rotating today's date forward, so the December
// to January wrap falls out of the calendar arithmetic. Feb 29 only enters
// the set when the rotation crosses an actual Feb 29, which means a Feb 29
// birthday does not match in non-leap query years.
func (u *ContactsUsecase) UpcomingBirthdays(ctx context.Context, ownerID uint, days int) ([]entity.Contact, error) {
	if days < 0 {
		days = 0
	}

	wanted := upcomingMonthDays(u.now(), days)

	contacts, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Contact, 0)
	for _, c := range contacts {
		key := monthDay{int(c.Birthday.Month()), c.Birthday.Day()}
		if _, ok := wanted[key]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type monthDay struct {
	month int
	day   int
}

// upcomingMonthDays returns the month/day pairs of today..today+days.
func upcomingMonthDays(today time.Time, days int) map[monthDay]struct{} {
	set := make(map[monthDay]struct{}, days+1)
	for i := 0; i <= days; i++ {
		d := today.AddDate(0, 0, i)
		set[monthDay{int(d.Month()), d.Day()}] = struct{}{}
	}
	return set
}
