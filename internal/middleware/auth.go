package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"team-dashboard/internal/metrics"
	"team-dashboard/internal/model"
	"team-dashboard/internal/session"
)

type sessionVerifier interface {
	VerifySession(ctx context.Context, tokenString string) (model.AuthUser, error)
}

type templateAccessResolver interface {
	HasAccess(ctx context.Context, templateID string, userID string) (bool, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	verifier sessionVerifier
	resolver templateAccessResolver
	metrics  *metrics.Metrics
}

func NewAuthMiddleware(verifier sessionVerifier, resolver templateAccessResolver, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, resolver: resolver, metrics: m}
}

// RequireAuth is the per-request gate: cookie -> token verification -> live
// user re-read. A request only proceeds with a verified, currently active
// identity in its context; every failure mode is a generic 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := session.Read(r)
		if !ok {
			m.deny(w, "no_token", http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := m.verifier.VerifySession(r.Context(), tokenString)
		switch {
		case errors.Is(err, model.ErrInvalidToken):
			m.deny(w, "invalid_token", http.StatusUnauthorized, "invalid or expired session")
			return
		case errors.Is(err, model.ErrSessionRevoked):
			m.deny(w, "suspended_or_missing", http.StatusUnauthorized, "invalid or expired session")
			return
		case err != nil:
			slog.Error("session verification failed", "error", err.Error())
			m.deny(w, "store_error", http.StatusInternalServerError, "unexpected server error")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles runs after RequireAuth and checks the live role, so a demotion
// takes effect on the next request even for an unexpired token.
func (m *AuthMiddleware) RequireRoles(allowedRoles ...model.Role) func(http.Handler) http.Handler {
	roleSet := map[model.Role]struct{}{}
	for _, role := range allowedRoles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				m.deny(w, "no_identity", http.StatusUnauthorized, "authentication required")
				return
			}

			if _, allowed := roleSet[identity.Role]; !allowed {
				m.deny(w, "role", http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTemplateAccess gates template-scoped routes server-side. The client
// runs the same check as a navigation convenience, but this is the boundary
// that actually protects the data. Unknown templates yield 404 so callers can
// distinguish them from a membership denial.
func (m *AuthMiddleware) RequireTemplateAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			m.deny(w, "no_identity", http.StatusUnauthorized, "authentication required")
			return
		}

		templateID := chi.URLParam(r, "template_id")
		if templateID == "" {
			m.deny(w, "template", http.StatusNotFound, "template not found")
			return
		}

		allowed, err := m.resolver.HasAccess(r.Context(), templateID, identity.ID)
		switch {
		case errors.Is(err, model.ErrTemplateNotFound):
			m.deny(w, "template_missing", http.StatusNotFound, "template not found")
			return
		case err != nil:
			slog.Error("template access check failed", "template_id", templateID, "error", err.Error())
			m.deny(w, "store_error", http.StatusInternalServerError, "unexpected server error")
			return
		case !allowed:
			m.deny(w, "template", http.StatusForbidden, "access denied")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func IdentityFromContext(ctx context.Context) (model.AuthUser, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.AuthUser)
	return identity, ok
}

func (m *AuthMiddleware) deny(w http.ResponseWriter, reason string, status int, message string) {
	m.metrics.AuthDenials.WithLabelValues(reason).Inc()

	code := "UNAUTHORIZED"
	switch status {
	case http.StatusForbidden:
		code = "FORBIDDEN"
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusInternalServerError:
		code = "INTERNAL_ERROR"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
