package adapters

import (
	"context"
	"errors"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/usecase"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

// snapshotSource adapts the user repository to the identity gate's
// UserSource interface.
type snapshotSource struct {
	users usecase.UserRepository
}

var _ identity.UserSource = (*snapshotSource)(nil)

// NewSnapshotSource creates an identity.UserSource over the user repository.
func NewSnapshotSource(users usecase.UserRepository) *snapshotSource {
	return &snapshotSource{users: users}
}

// FindByID loads the user and projects it into an identity snapshot.
func (s *snapshotSource) FindByID(ctx context.Context, id uint) (*identity.Snapshot, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	return &identity.Snapshot{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: u.AvatarURL,
	}, nil
}
