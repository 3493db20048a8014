// Package usecase implements the business logic for the users feature:
// the current user's profile and avatar management.
package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

// avatarFolder is the image-host folder avatars are uploaded into.
const avatarFolder = "avatars"

// UserRepository is the subset of the user store this feature needs.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id uint, url string) error
}

// AvatarUploader pushes an image to the external image host and returns its
// delivery URL.
type AvatarUploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

// SnapshotCache drops cached identity snapshots after a profile change.
type SnapshotCache interface {
	Del(ctx context.Context, keys ...string) error
}

// UsersUsecase provides profile operations for the authenticated user.
type UsersUsecase struct {
	users    UserRepository
	uploader AvatarUploader
	cache    SnapshotCache
}

// NewUsersUsecase creates a new UsersUsecase.
func NewUsersUsecase(users UserRepository, uploader AvatarUploader, cache SnapshotCache) *UsersUsecase {
	return &UsersUsecase{users: users, uploader: uploader, cache: cache}
}

// GetByID returns the stored user record.
func (u *UsersUsecase) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateAvatar uploads the image to the external host under a stable
// per-user public id, persists the returned URL and drops the cached
// identity snapshot.
func (u *UsersUsecase) UpdateAvatar(ctx context.Context, userID uint, file io.Reader) (*entity.User, error) {
	url, err := u.uploader.UploadImage(ctx, file, avatarFolder, fmt.Sprintf("user_%d", userID))
	if err != nil {
		return nil, fmt.Errorf("avatar upload failed: %w", err)
	}

	if err := u.users.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, err
	}
	_ = u.cache.Del(ctx, identity.SnapshotKey(userID))

	return u.users.FindByID(ctx, userID)
}
