package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-dashboard/internal/metrics"
	"team-dashboard/internal/model"
	"team-dashboard/internal/password"
	"team-dashboard/internal/service"
	"team-dashboard/internal/token"
)

// memoryUserStore backs the handler tests without a database.
type memoryUserStore struct {
	users map[string]model.User
}

func (s *memoryUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (s *memoryUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memoryUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	return err == nil, nil
}

func (s *memoryUserStore) Create(_ context.Context, u model.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *memoryUserStore) UpdateRole(_ context.Context, id string, role model.Role) error {
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Role = role
	s.users[id] = user
	return nil
}

func (s *memoryUserStore) SetSuspended(_ context.Context, id string, suspended bool) error {
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Suspended = suspended
	s.users[id] = user
	return nil
}

func (s *memoryUserStore) List(_ context.Context) ([]model.AuthUser, error) {
	out := make([]model.AuthUser, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user.Public())
	}
	return out, nil
}

func (s *memoryUserStore) Count(_ context.Context) (int, error) {
	return len(s.users), nil
}

func newLoginHandler(t *testing.T) *AuthHandler {
	t.Helper()

	hash, err := password.Hash("admin123")
	require.NoError(t, err)

	store := &memoryUserStore{users: map[string]model.User{
		"admin-id": {
			ID:           "admin-id",
			Username:     "admin",
			PasswordHash: hash,
			DisplayName:  "Administrator",
			Role:         model.RoleAdmin,
		},
	}}

	authService := service.NewAuthService(store, token.NewCodec("test-secret", time.Hour), metrics.New(prometheus.NewRegistry()))
	return NewAuthHandler(authService, false)
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Login(rec, req)
	return rec
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		rec := postLogin(t, newLoginHandler(t), `{"username":"admin","password":"admin123"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "auth-token", cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, int(time.Hour.Seconds()), cookies[0].MaxAge)

		var envelope model.APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.True(t, envelope.Success)

		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var result model.LoginResult
		require.NoError(t, json.Unmarshal(raw, &result))
		assert.Equal(t, model.RoleAdmin, result.User.Role)
		assert.Equal(t, int64(3600), result.ExpiresIn)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("wrong password is unauthorized and sets no cookie", func(t *testing.T) {
		rec := postLogin(t, newLoginHandler(t), `{"username":"admin","password":"wrong"}`)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, rec.Result().Cookies())
	})

	t.Run("unknown username gets the identical response", func(t *testing.T) {
		h := newLoginHandler(t)
		unknown := postLogin(t, h, `{"username":"nobody","password":"admin123"}`)
		wrong := postLogin(t, h, `{"username":"admin","password":"wrong"}`)

		require.Equal(t, unknown.Code, wrong.Code)
		require.Equal(t, unknown.Body.String(), wrong.Body.String())
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		rec := postLogin(t, newLoginHandler(t), `{"username":"admin"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is a validation error", func(t *testing.T) {
		rec := postLogin(t, newLoginHandler(t), `{not json`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Parallel()

	h := newLoginHandler(t)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth-token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRegisterHandler(t *testing.T) {
	t.Parallel()

	h := newLoginHandler(t)

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		h.Register(rec, req)
		return rec
	}

	t.Run("creates the account", func(t *testing.T) {
		rec := post(`{"username":"grace","password":"longenough","display_name":"Grace","role":"staff"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("short password rejected", func(t *testing.T) {
		rec := post(`{"username":"short","password":"1234567","display_name":"Short"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		rec := post(`{"username":"admin","password":"longenough","display_name":"Dup"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}
