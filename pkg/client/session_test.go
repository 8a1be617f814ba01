package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-dashboard/internal/model"
)

// fakeServer is a minimal stand-in for the dashboard API: a single admin
// account, an open template and a restricted one with no members.
type fakeServer struct {
	mu       sync.Mutex
	sessions map[string]model.AuthUser
	meGate   chan struct{}
}

func newFakeServer() *fakeServer {
	return &fakeServer{sessions: map[string]model.AuthUser{}}
}

func (s *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", s.login)
	mux.HandleFunc("POST /api/v1/auth/logout", s.logout)
	mux.HandleFunc("GET /api/v1/auth/me", s.me)
	mux.HandleFunc("GET /api/v1/templates/{id}", s.template)
	return mux
}

func (s *fakeServer) write(w http.ResponseWriter, status int, resp model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *fakeServer) login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&payload)

	if payload.Username != "admin" || payload.Password != "admin123" {
		s.write(w, http.StatusUnauthorized, model.APIResponse{
			Error: &model.APIError{Code: "UNAUTHORIZED", Message: "invalid credentials"},
		})
		return
	}

	identity := model.AuthUser{ID: "admin-id", Username: "admin", DisplayName: "Administrator", Role: model.RoleAdmin}

	s.mu.Lock()
	s.sessions["session-1"] = identity
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: "auth-token", Value: "session-1", Path: "/"})
	s.write(w, http.StatusOK, model.APIResponse{
		Success: true,
		Data:    model.LoginResult{User: identity, ExpiresIn: 604800},
	})
}

// logout only clears the cookie: tokens are stateless, so the server holds no
// session to delete. A stale in-flight check can therefore still resolve as
// authenticated, which is exactly what the generation counter protects against.
func (s *fakeServer) logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "auth-token", Value: "", Path: "/", MaxAge: -1})
	s.write(w, http.StatusOK, model.APIResponse{Success: true, Data: map[string]any{"logged_out": true}})
}

func (s *fakeServer) identity(r *http.Request) (model.AuthUser, bool) {
	cookie, err := r.Cookie("auth-token")
	if err != nil {
		return model.AuthUser{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.sessions[cookie.Value]
	return identity, ok
}

func (s *fakeServer) me(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	gate := s.meGate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	identity, ok := s.identity(r)
	if !ok {
		s.write(w, http.StatusUnauthorized, model.APIResponse{
			Error: &model.APIError{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return
	}

	s.write(w, http.StatusOK, model.APIResponse{Success: true, Data: identity})
}

func (s *fakeServer) template(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.identity(r); !ok {
		s.write(w, http.StatusUnauthorized, model.APIResponse{
			Error: &model.APIError{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return
	}

	switch r.PathValue("id") {
	case "open-1":
		s.write(w, http.StatusOK, model.APIResponse{Success: true, Data: model.Template{ID: "open-1", Name: "Announcements", Open: true}})
	case "restricted-1":
		s.write(w, http.StatusForbidden, model.APIResponse{
			Error: &model.APIError{Code: "FORBIDDEN", Message: "access denied"},
		})
	default:
		s.write(w, http.StatusNotFound, model.APIResponse{
			Error: &model.APIError{Code: "NOT_FOUND", Message: "template not found"},
		})
	}
}

func newTestSession(t *testing.T) (*SessionManager, *fakeServer) {
	t.Helper()

	fake := newFakeServer()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	c, err := New(server.URL)
	require.NoError(t, err)

	return NewSessionManager(c), fake
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("starts initializing, settles unauthenticated", func(t *testing.T) {
		manager, _ := newTestSession(t)
		require.Equal(t, StateInitializing, manager.State())

		state, err := manager.Refresh(context.Background())
		require.NoError(t, err)
		require.Equal(t, StateUnauthenticated, state)
	})

	t.Run("login transitions to authenticated", func(t *testing.T) {
		manager, _ := newTestSession(t)

		identity, err := manager.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)
		require.Equal(t, model.RoleAdmin, identity.Role)
		require.Equal(t, StateAuthenticated, manager.State())

		held, ok := manager.Identity()
		require.True(t, ok)
		require.Equal(t, "admin", held.Username)
	})

	t.Run("bad credentials stay unauthenticated", func(t *testing.T) {
		manager, _ := newTestSession(t)

		_, err := manager.Login(context.Background(), "admin", "wrong")
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.Equal(t, StateUnauthenticated, manager.State())
	})

	t.Run("logout clears projection before the server round trip", func(t *testing.T) {
		manager, _ := newTestSession(t)

		_, err := manager.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		require.NoError(t, manager.Logout(context.Background()))
		require.Equal(t, StateUnauthenticated, manager.State())

		_, ok := manager.Identity()
		require.False(t, ok)

		state, err := manager.Refresh(context.Background())
		require.NoError(t, err)
		require.Equal(t, StateUnauthenticated, state)
	})
}

func TestSupersededRefreshIsDiscarded(t *testing.T) {
	t.Parallel()

	manager, fake := newTestSession(t)

	_, err := manager.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	// Hold the in-flight session check open, log out underneath it, then let
	// the stale authenticated verdict arrive.
	gate := make(chan struct{})
	fake.mu.Lock()
	fake.meGate = gate
	fake.mu.Unlock()

	done := make(chan State, 1)
	go func() {
		state, _ := manager.Refresh(context.Background())
		done <- state
	}()

	require.NoError(t, manager.Logout(context.Background()))
	require.Equal(t, StateUnauthenticated, manager.State())

	fake.mu.Lock()
	fake.meGate = nil
	fake.mu.Unlock()
	close(gate)

	state := <-done
	assert.Equal(t, StateUnauthenticated, state)
	assert.Equal(t, StateUnauthenticated, manager.State())
}

func TestNavigate(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		manager, _ := newTestSession(t)

		verdict, err := manager.Navigate(context.Background(), "open-1")
		require.NoError(t, err)
		require.Equal(t, VerdictRedirectLogin, verdict)
	})

	t.Run("authenticated user enters an open template", func(t *testing.T) {
		manager, _ := newTestSession(t)
		_, err := manager.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		verdict, err := manager.Navigate(context.Background(), "open-1")
		require.NoError(t, err)
		require.Equal(t, VerdictAllowed, verdict)
	})

	t.Run("membership denial redirects to access denied, not login", func(t *testing.T) {
		manager, _ := newTestSession(t)
		_, err := manager.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		verdict, err := manager.Navigate(context.Background(), "restricted-1")
		require.NoError(t, err)
		require.Equal(t, VerdictRedirectDenied, verdict)
	})

	t.Run("unknown template is a distinct not-found verdict", func(t *testing.T) {
		manager, _ := newTestSession(t)
		_, err := manager.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		verdict, err := manager.Navigate(context.Background(), "missing")
		require.NoError(t, err)
		require.Equal(t, VerdictNotFound, verdict)
	})

	t.Run("no template id checks authentication only", func(t *testing.T) {
		manager, _ := newTestSession(t)
		_, err := manager.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)

		verdict, err := manager.Navigate(context.Background(), "")
		require.NoError(t, err)
		require.Equal(t, VerdictAllowed, verdict)
	})
}
