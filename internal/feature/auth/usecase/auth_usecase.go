package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/cache"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// resetMarkerPrefix namespaces the single-use reset markers in the cache.
	resetMarkerPrefix = "pwdreset:"

	// defaultAvatarURL is the avatar assigned by the admin reset endpoint.
	defaultAvatarURL = "https://res.cloudinary.com/demo/image/upload/default_avatar.png"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id uint, hashed string) error

	// SetVerified marks the user's email as verified. Idempotent.
	SetVerified(ctx context.Context, id uint) error

	// UpdateAvatar replaces the stored avatar URL.
	UpdateAvatar(ctx context.Context, id uint, url string) error
}

// TokenIssuer issues and verifies purpose-scoped signed tokens.
type TokenIssuer interface {
	Issue(subject string) (token, jti string, err error)
	IssueWithTTL(subject string, ttl time.Duration) (token, jti string, err error)
	Verify(token string) (subject, jti string, err error)
}

// MarkerCache holds the single-use password-reset markers and the cached
// identity snapshots the reset flow invalidates.
type MarkerCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	TakeDel(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users       UserRepository
	access      TokenIssuer
	verify      TokenIssuer
	reset       TokenIssuer
	cache       MarkerCache
	frontendURL string
	resetTTL    time.Duration
}

// NewAuthUsecase creates a new authUsecase. The three issuers carry the
// access, email-verification and password-reset purposes respectively.
func NewAuthUsecase(users UserRepository, access, verify, reset TokenIssuer, markerCache MarkerCache, frontendURL string, resetTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:       users,
		access:      access,
		verify:      verify,
		reset:       reset,
		cache:       markerCache,
		frontendURL: frontendURL,
		resetTTL:    resetTTL,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// normalizeEmail lowercases the address so email comparison is
// case-insensitive at the store.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password and logs the email
// verification link. Email delivery itself is an external collaborator.
func (u *authUsecase) Register(ctx context.Context, email, password, fullName string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:          normalizeEmail(email),
		HashedPassword: string(hashed),
		FullName:       fullName,
		Role:           identity.RoleUser,
		IsActive:       true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if vt, _, err := u.verify.Issue(strconv.FormatUint(uint64(user.ID), 10)); err != nil {
		slog.Error("failed to issue verification token", "user_id", user.ID, "error", err)
	} else {
		slog.Info("verification link issued", "email", user.Email,
			"link", fmt.Sprintf("%s/verify?token=%s", u.frontendURL, vt))
	}

	return user, nil
}

// Login authenticates a user and returns an access token on success.
// A bcrypt comparison runs even when the user does not exist, so a missing
// account cannot be told apart from a wrong password by timing.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path when the
	// user does not exist.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.HashedPassword
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	tok, _, err := u.access.Issue(strconv.FormatUint(uint64(user.ID), 10))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tok, nil
}

// VerifyEmail redeems an email-verification token and flips the user's
// verified flag.
func (u *authUsecase) VerifyEmail(ctx context.Context, tokenStr string) error {
	sub, _, err := u.verify.Verify(tokenStr)
	if err != nil {
		return ErrInvalidToken
	}
	id64, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, uint(id64))
	if err != nil {
		return err
	}
	if user.IsVerified {
		return nil
	}
	return u.users.SetVerified(ctx, user.ID)
}

// RequestPasswordReset issues a reset token for the email and writes its
// single-use marker to the cache. For an unknown email it does nothing, and
// callers must respond identically in both cases so account existence is
// not revealed.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	tok, jti, err := u.reset.Issue(user.Email)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	// The marker write must complete before the response: without it the
	// token is not redeemable.
	if err := u.cache.Set(ctx, resetMarkerPrefix+jti, user.Email, u.resetTTL); err != nil {
		return fmt.Errorf("failed to store reset marker: %w", err)
	}

	slog.Info("password reset link issued", "email", user.Email,
		"link", fmt.Sprintf("%s/reset-password?token=%s", u.frontendURL, tok))
	return nil
}

// ResetPassword redeems a reset token and replaces the user's password hash.
// The single-use marker is claimed atomically, so a token redeems at most
// once even under concurrent attempts.
func (u *authUsecase) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	email, jti, err := u.reset.Verify(tokenStr)
	if err != nil {
		return ErrInvalidToken
	}

	stored, err := u.cache.TakeDel(ctx, resetMarkerPrefix+jti)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return ErrTokenUsed
		}
		// A cache failure rejects the redemption rather than allowing an
		// unverified claim through.
		return fmt.Errorf("failed to claim reset marker: %w", err)
	}
	if stored != email {
		return ErrTokenUsed
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}

	// Drop the identity snapshot, best effort.
	_ = u.cache.Del(ctx, identity.SnapshotKey(user.ID))

	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}

// SetDefaultAvatar resets a user's avatar to the default image. Admin only;
// the role check happens at the transport layer.
func (u *authUsecase) SetDefaultAvatar(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.users.UpdateAvatar(ctx, user.ID, defaultAvatarURL); err != nil {
		return nil, err
	}
	user.AvatarURL = defaultAvatarURL

	_ = u.cache.Del(ctx, identity.SnapshotKey(user.ID))
	return user, nil
}
