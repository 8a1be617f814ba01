package client

import (
	"context"
	"errors"
	"sync"

	"team-dashboard/internal/model"
)

type State string

const (
	StateInitializing    State = "initializing"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Verdict is the navigation decision for a protected route.
type Verdict string

const (
	// VerdictAllowed means the route may render.
	VerdictAllowed Verdict = "allowed"
	// VerdictRedirectLogin means no valid session exists.
	VerdictRedirectLogin Verdict = "redirect_login"
	// VerdictRedirectDenied means the session is valid but lacks access. The
	// two redirect verdicts are deliberately distinct: denied tells the user
	// who they are is known but insufficient.
	VerdictRedirectDenied Verdict = "redirect_denied"
	// VerdictNotFound means the target template does not exist.
	VerdictNotFound Verdict = "not_found"
	// VerdictPending means the session check has not resolved yet.
	VerdictPending Verdict = "pending"
)

// SessionManager tracks whether a valid session exists and re-validates it on
// navigation. It starts in Initializing and settles into Authenticated or
// Unauthenticated after the first check.
type SessionManager struct {
	client *Client

	mu         sync.Mutex
	state      State
	identity   model.AuthUser
	generation uint64
}

func NewSessionManager(client *Client) *SessionManager {
	return &SessionManager{
		client: client,
		state:  StateInitializing,
	}
}

func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the last verified identity. Valid only while State is
// Authenticated; callers must not trust it for privileged decisions, the
// server re-checks every request.
func (m *SessionManager) Identity() (model.AuthUser, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.state == StateAuthenticated
}

// Refresh runs the server session check and applies the verdict. If another
// Refresh, Login or Logout started after this one, the result is superseded
// and discarded so a slow response cannot regress the state machine.
func (m *SessionManager) Refresh(ctx context.Context) (State, error) {
	m.mu.Lock()
	generation := m.generation
	m.mu.Unlock()

	identity, err := m.client.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != generation {
		return m.state, nil
	}

	switch {
	case err == nil:
		m.state = StateAuthenticated
		m.identity = identity
		return m.state, nil
	case errors.Is(err, ErrUnauthenticated):
		m.state = StateUnauthenticated
		m.identity = model.AuthUser{}
		return m.state, nil
	default:
		// Store or transport failure: fail closed but keep the error so the
		// caller can retry instead of bouncing the user to login.
		m.state = StateUnauthenticated
		m.identity = model.AuthUser{}
		return m.state, err
	}
}

func (m *SessionManager) Login(ctx context.Context, username string, password string) (model.AuthUser, error) {
	identity, err := m.client.Login(ctx, username, password)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++

	if err != nil {
		m.state = StateUnauthenticated
		m.identity = model.AuthUser{}
		return model.AuthUser{}, err
	}

	m.state = StateAuthenticated
	m.identity = identity
	return identity, nil
}

// Logout clears the local projection first, then the server cookie, so the
// next protected-route mount never sees a stale authenticated flash.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.generation++
	m.state = StateUnauthenticated
	m.identity = model.AuthUser{}
	m.mu.Unlock()

	return m.client.Logout(ctx)
}

// Navigate decides what a protected, optionally template-scoped route should
// do. An empty templateID checks authentication only.
func (m *SessionManager) Navigate(ctx context.Context, templateID string) (Verdict, error) {
	state, err := m.Refresh(ctx)
	if err != nil {
		return VerdictPending, err
	}

	switch state {
	case StateUnauthenticated:
		return VerdictRedirectLogin, nil
	case StateInitializing:
		return VerdictPending, nil
	}

	if templateID == "" {
		return VerdictAllowed, nil
	}

	_, err = m.client.GetTemplate(ctx, templateID)
	switch {
	case err == nil:
		return VerdictAllowed, nil
	case errors.Is(err, ErrNotFound):
		return VerdictNotFound, nil
	case errors.Is(err, ErrForbidden):
		return VerdictRedirectDenied, nil
	case errors.Is(err, ErrUnauthenticated):
		// Session died between the two calls.
		return VerdictRedirectLogin, nil
	default:
		return VerdictPending, err
	}
}
