package handler

import (
	"encoding/json"
	"net/http"

	"team-dashboard/internal/middleware"
	"team-dashboard/internal/model"
	"team-dashboard/internal/service"
	"team-dashboard/internal/session"
	"team-dashboard/pkg/apierror"
)

type AuthHandler struct {
	service      *service.AuthService
	secureCookie bool
}

func NewAuthHandler(service *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookie: secureCookie}
}

// Login verifies credentials and binds the issued token to the session
// cookie. The response body carries only the public identity fields.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	user, signed, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	ttl := h.service.SessionTTL()
	session.Write(w, signed, ttl, h.secureCookie)
	writeSuccess(w, http.StatusOK, model.LoginResult{User: user, ExpiresIn: int64(ttl.Seconds())}, nil)
}

// Logout clears the cookie. Idempotent: it succeeds with or without an
// active session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, h.secureCookie)
	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true}, nil)
}

// Me is the session check used by clients on every protected-route mount.
// It reports the live identity, not the token snapshot.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeSuccess(w, http.StatusOK, identity, nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}
	if err := checkPayload(payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}
