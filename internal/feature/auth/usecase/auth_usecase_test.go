package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/cache"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/token"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByEmailFunc    func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc       func(ctx context.Context, id uint) (*entity.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uint, hashed string) error
	SetVerifiedFunc    func(ctx context.Context, id uint) error
	UpdateAvatarFunc   func(ctx context.Context, id uint, url string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, hashed)
	}
	return nil
}

func (m *mockUserRepository) SetVerified(ctx context.Context, id uint) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id uint, url string) error {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, id, url)
	}
	return nil
}

// newTestSigners builds real signers so token round trips behave as in
// production.
func newTestSigners(t *testing.T) (access, verify, reset *token.Signer) {
	t.Helper()

	var err error
	access, err = token.NewSigner("test-secret", "", "HS256", token.PurposeAccess, time.Hour)
	require.NoError(t, err)
	verify, err = token.NewSigner("test-secret", token.SaltVerifyEmail, "HS256", token.PurposeVerifyEmail, time.Hour)
	require.NoError(t, err)
	reset, err = token.NewSigner("test-secret", token.SaltReset, "HS256", token.PurposeReset, time.Hour)
	require.NoError(t, err)
	return access, verify, reset
}

// newTestCache creates a miniredis-backed cache store.
func newTestCache(t *testing.T) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return cache.NewStore(client), mr
}

func newTestUsecase(t *testing.T, users UserRepository) (*authUsecase, *miniredis.Miniredis) {
	t.Helper()
	access, verify, reset := newTestSigners(t)
	store, mr := newTestCache(t)
	return NewAuthUsecase(users, access, verify, reset, store, "http://localhost:3000", time.Hour), mr
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Verify that the password is hashed
				if user.HashedPassword == "password123" {
					t.Error("password is not hashed")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")); err != nil {
					t.Errorf("invalid bcrypt hash: %v", err)
				}
				if user.Email != "test@example.com" {
					t.Errorf("expected normalized email, got %q", user.Email)
				}
				if user.Role != identity.RoleUser {
					t.Errorf("expected role %q, got %q", identity.RoleUser, user.Role)
				}
				if !user.IsActive {
					t.Error("new user should be active")
				}
				if user.IsVerified {
					t.Error("new user should not be verified")
				}
				user.ID = 1
				return nil
			},
		}
		uc, _ := newTestUsecase(t, mockRepo)

		user, err := uc.Register(ctx, "Test@Example.COM", "password123", "Test User")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 {
			t.Errorf("expected ID 1, got %d", user.ID)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &mockUserRepository{})

		_, err := uc.Register(ctx, "test@example.com", "short", "Test User")
		if err == nil {
			t.Fatal("expected error but got nil")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc, _ := newTestUsecase(t, mockRepo)

		_, err := uc.Register(ctx, "test@example.com", "password123", "")
		if !errors.Is(err, ErrEmailAlreadyExists) {
			t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:             1,
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		uc, _ := newTestUsecase(t, mockRepo)

		tok, err := uc.Login(ctx, "test@example.com", password)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok == "" {
			t.Fatal("token is empty")
		}

		// The token must be a valid access token for the user's id.
		access, _, _ := newTestSigners(t)
		sub, _, err := access.Verify(tok)
		if err != nil {
			t.Fatalf("issued token does not verify: %v", err)
		}
		if sub != "1" {
			t.Errorf("expected subject '1', got %q", sub)
		}
	})

	t.Run("user not found", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &mockUserRepository{})

		_, err := uc.Login(ctx, "wrong@example.com", password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("incorrect password", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser, nil
			},
		}
		uc, _ := newTestUsecase(t, mockRepo)

		_, err := uc.Login(ctx, "test@example.com", "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})
}

func TestAuthUsecase_VerifyEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token marks user verified", func(t *testing.T) {
		verifiedID := uint(0)
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Email: "test@example.com"}, nil
			},
			SetVerifiedFunc: func(ctx context.Context, id uint) error {
				verifiedID = id
				return nil
			},
		}
		uc, _ := newTestUsecase(t, mockRepo)

		tok, _, err := uc.verify.Issue("1")
		require.NoError(t, err)

		if err := uc.VerifyEmail(ctx, tok); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if verifiedID != 1 {
			t.Errorf("expected SetVerified(1), got %d", verifiedID)
		}
	})

	t.Run("already verified is a no-op", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, IsVerified: true}, nil
			},
			SetVerifiedFunc: func(ctx context.Context, id uint) error {
				t.Error("SetVerified must not be called for a verified user")
				return nil
			},
		}
		uc, _ := newTestUsecase(t, mockRepo)

		tok, _, err := uc.verify.Issue("1")
		require.NoError(t, err)

		if err := uc.VerifyEmail(ctx, tok); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("access token is rejected", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &mockUserRepository{})

		tok, _, err := uc.access.Issue("1")
		require.NoError(t, err)

		if err := uc.VerifyEmail(ctx, tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got: %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &mockUserRepository{})

		if err := uc.VerifyEmail(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got: %v", err)
		}
	})
}

func TestAuthUsecase_PasswordReset(t *testing.T) {
	ctx := context.Background()
	testUser := &entity.User{ID: 1, Email: "test@example.com", HashedPassword: "old-hash"}

	knownUsers := func(updated *string) *mockUserRepository {
		return &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
			UpdatePasswordFunc: func(ctx context.Context, id uint, hashed string) error {
				if updated != nil {
					*updated = hashed
				}
				return nil
			},
		}
	}

	// requestReset runs the request flow and returns the issued token by
	// re-creating it from the marker the usecase stored.
	issueResetToken := func(t *testing.T, uc *authUsecase, email string) string {
		t.Helper()
		tok, jti, err := uc.reset.Issue(email)
		require.NoError(t, err)
		require.NoError(t, uc.cache.Set(ctx, resetMarkerPrefix+jti, email, time.Hour))
		return tok
	}

	t.Run("request for unknown email succeeds silently", func(t *testing.T) {
		uc, mr := newTestUsecase(t, &mockUserRepository{})

		if err := uc.RequestPasswordReset(ctx, "nobody@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(mr.Keys()) != 0 {
			t.Error("no marker may be written for an unknown email")
		}
	})

	t.Run("request writes a single-use marker", func(t *testing.T) {
		uc, mr := newTestUsecase(t, knownUsers(nil))

		if err := uc.RequestPasswordReset(ctx, "test@example.com"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		keys := mr.Keys()
		if len(keys) != 1 {
			t.Fatalf("expected exactly one marker key, got %v", keys)
		}
	})

	t.Run("full reset flow", func(t *testing.T) {
		var newHash string
		uc, _ := newTestUsecase(t, knownUsers(&newHash))
		tok := issueResetToken(t, uc, testUser.Email)

		if err := uc.ResetPassword(ctx, tok, "new-password-123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new-password-123")); err != nil {
			t.Errorf("stored hash does not match new password: %v", err)
		}
	})

	t.Run("token redeems at most once", func(t *testing.T) {
		uc, _ := newTestUsecase(t, knownUsers(nil))
		tok := issueResetToken(t, uc, testUser.Email)

		if err := uc.ResetPassword(ctx, tok, "new-password-123"); err != nil {
			t.Fatalf("first redemption failed: %v", err)
		}
		if err := uc.ResetPassword(ctx, tok, "other-password-456"); !errors.Is(err, ErrTokenUsed) {
			t.Errorf("expected ErrTokenUsed on second redemption, got: %v", err)
		}
	})

	t.Run("token without marker is rejected", func(t *testing.T) {
		uc, _ := newTestUsecase(t, knownUsers(nil))

		// Signed token whose marker was never stored.
		tok, _, err := uc.reset.Issue(testUser.Email)
		require.NoError(t, err)

		if err := uc.ResetPassword(ctx, tok, "new-password-123"); !errors.Is(err, ErrTokenUsed) {
			t.Errorf("expected ErrTokenUsed, got: %v", err)
		}
	})

	t.Run("access token is rejected before the marker lookup", func(t *testing.T) {
		uc, _ := newTestUsecase(t, knownUsers(nil))

		tok, _, err := uc.access.Issue("test@example.com")
		require.NoError(t, err)

		if err := uc.ResetPassword(ctx, tok, "new-password-123"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got: %v", err)
		}
	})

	t.Run("short new password is rejected without consuming the marker", func(t *testing.T) {
		uc, _ := newTestUsecase(t, knownUsers(nil))
		tok := issueResetToken(t, uc, testUser.Email)

		if err := uc.ResetPassword(ctx, tok, "short"); err == nil {
			t.Fatal("expected error but got nil")
		}
		// The marker survives, so a valid retry still works.
		if err := uc.ResetPassword(ctx, tok, "new-password-123"); err != nil {
			t.Errorf("marker should have survived the rejected attempt: %v", err)
		}
	})

	t.Run("reset drops the cached identity snapshot", func(t *testing.T) {
		uc, mr := newTestUsecase(t, knownUsers(nil))
		mr.Set(identity.SnapshotKey(testUser.ID), `{"id":1}`)
		tok := issueResetToken(t, uc, testUser.Email)

		if err := uc.ResetPassword(ctx, tok, "new-password-123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mr.Exists(identity.SnapshotKey(testUser.ID)) {
			t.Error("identity snapshot should have been invalidated")
		}
	})
}

func TestAuthUsecase_SetDefaultAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("updates avatar and invalidates snapshot", func(t *testing.T) {
		var gotURL string
		mockRepo := &mockUserRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Email: "test@example.com", AvatarURL: "old"}, nil
			},
			UpdateAvatarFunc: func(ctx context.Context, id uint, url string) error {
				gotURL = url
				return nil
			},
		}
		uc, mr := newTestUsecase(t, mockRepo)
		mr.Set(identity.SnapshotKey(1), `{"id":1}`)

		user, err := uc.SetDefaultAvatar(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotURL != defaultAvatarURL {
			t.Errorf("expected default avatar URL, got %q", gotURL)
		}
		if user.AvatarURL != defaultAvatarURL {
			t.Errorf("returned user should carry the new URL, got %q", user.AvatarURL)
		}
		if mr.Exists(identity.SnapshotKey(1)) {
			t.Error("identity snapshot should have been invalidated")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &mockUserRepository{})

		_, err := uc.SetDefaultAvatar(ctx, 99)
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})
}
