package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/domain/entity"
	authusecase "github.com/Natalina686/goit-pythonweb-hw-012/internal/feature/auth/usecase"
	"github.com/Natalina686/goit-pythonweb-hw-012/internal/platform/identity"
)

// mockUsersUsecase is a mock implementation of the UsersUsecase interface.
type mockUsersUsecase struct {
	GetByIDFunc      func(ctx context.Context, id uint) (*entity.User, error)
	UpdateAvatarFunc func(ctx context.Context, userID uint, file io.Reader) (*entity.User, error)
}

func (m *mockUsersUsecase) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, authusecase.ErrUserNotFound
}

func (m *mockUsersUsecase) UpdateAvatar(ctx context.Context, userID uint, file io.Reader) (*entity.User, error) {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, userID, file)
	}
	return nil, authusecase.ErrUserNotFound
}

// newTestRouter wires the handler behind a middleware that injects a fixed
// identity, standing in for the real bearer-token gate.
func newTestRouter(m *mockUsersUsecase, callerID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(m)

	engine := gin.New()
	group := engine.Group("/users", func(c *gin.Context) {
		c.Set(identity.ContextIdentity, &identity.Snapshot{ID: callerID, Email: "me@example.com", Role: identity.RoleUser})
	})
	group.GET("/me", h.Me)
	group.POST("/me/avatar", h.UploadAvatar)
	return engine
}

func TestUserHandler_Me(t *testing.T) {
	t.Run("returns the stored profile", func(t *testing.T) {
		engine := newTestRouter(&mockUsersUsecase{
			GetByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				assert.Equal(t, uint(7), id)
				return &entity.User{ID: id, Email: "me@example.com", IsVerified: true}, nil
			},
		}, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"me@example.com"`)
	})

	t.Run("deleted user", func(t *testing.T) {
		engine := newTestRouter(&mockUsersUsecase{}, 7)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_UploadAvatar(t *testing.T) {
	multipartBody := func(t *testing.T, field, content string) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile(field, "avatar.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		engine := newTestRouter(&mockUsersUsecase{
			UpdateAvatarFunc: func(ctx context.Context, userID uint, file io.Reader) (*entity.User, error) {
				assert.Equal(t, uint(7), userID)
				b, _ := io.ReadAll(file)
				assert.Equal(t, "png-bytes", string(b))
				return &entity.User{ID: userID, Email: "me@example.com", AvatarURL: "https://cdn.example.com/a.png"}, nil
			},
		}, 7)

		body, contentType := multipartBody(t, "file", "png-bytes")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", body)
		req.Header.Set("Content-Type", contentType)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"avatar_url":"https://cdn.example.com/a.png"`)
	})

	t.Run("missing file field", func(t *testing.T) {
		engine := newTestRouter(&mockUsersUsecase{}, 7)

		body, contentType := multipartBody(t, "wrong-field", "png-bytes")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", body)
		req.Header.Set("Content-Type", contentType)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upload failure", func(t *testing.T) {
		engine := newTestRouter(&mockUsersUsecase{
			UpdateAvatarFunc: func(ctx context.Context, userID uint, file io.Reader) (*entity.User, error) {
				return nil, io.ErrUnexpectedEOF
			},
		}, 7)

		body, contentType := multipartBody(t, "file", "png-bytes")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", body)
		req.Header.Set("Content-Type", contentType)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
