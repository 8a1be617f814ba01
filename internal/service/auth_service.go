package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"team-dashboard/internal/metrics"
	"team-dashboard/internal/model"
	"team-dashboard/internal/password"
	"team-dashboard/internal/token"
	"team-dashboard/pkg/apierror"
)

// UserStore is the collaborator the auth path reads live user state from.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u model.User) error
	UpdateRole(ctx context.Context, id string, role model.Role) error
	SetSuspended(ctx context.Context, id string, suspended bool) error
	List(ctx context.Context) ([]model.AuthUser, error)
	Count(ctx context.Context) (int, error)
}

type AuthService struct {
	users   UserStore
	codec   *token.Codec
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAuthService(users UserStore, codec *token.Codec, m *metrics.Metrics) *AuthService {
	return &AuthService{users: users, codec: codec, metrics: m, now: time.Now}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.codec.Lifetime()
}

// Login verifies credentials and issues a fresh session token. Unknown
// username, wrong password and suspended account all collapse into the same
// generic failure so the response never aids enumeration.
func (s *AuthService) Login(ctx context.Context, username string, pass string) (model.AuthUser, string, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, model.ErrUserNotFound) {
		s.metrics.Logins.WithLabelValues("failure").Inc()
		return model.AuthUser{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.AuthUser{}, "", fmt.Errorf("login lookup: %w", err)
	}

	if !password.Verify(pass, user.PasswordHash) || user.Suspended {
		s.metrics.Logins.WithLabelValues("failure").Inc()
		return model.AuthUser{}, "", model.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.Public(), s.now().UTC())
	if err != nil {
		return model.AuthUser{}, "", fmt.Errorf("issue session token: %w", err)
	}

	s.metrics.Logins.WithLabelValues("success").Inc()
	return user.Public(), signed, nil
}

// VerifySession turns a raw cookie token into a trusted identity. The token's
// embedded claims are only used to locate the subject: role and profile come
// from the live record, and a missing or suspended record rejects the session
// even while the token itself is still unexpired. This per-request re-read is
// the only revocation mechanism and must not be cached.
func (s *AuthService) VerifySession(ctx context.Context, tokenString string) (model.AuthUser, error) {
	claims, err := s.codec.Verify(tokenString, s.now().UTC())
	if err != nil {
		return model.AuthUser{}, model.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.AuthUser{}, model.ErrSessionRevoked
	}
	if err != nil {
		// Store unreachable or request cancelled: fail closed.
		return model.AuthUser{}, fmt.Errorf("session subject lookup: %w", err)
	}

	if user.Suspended {
		return model.AuthUser{}, model.ErrSessionRevoked
	}

	return user.Public(), nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	username := strings.TrimSpace(req.Username)
	displayName := strings.TrimSpace(req.DisplayName)

	if username == "" || req.Password == "" {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}
	if len(req.Password) < 8 {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "password must be at least 8 characters", "password", http.StatusBadRequest)
	}
	if displayName == "" {
		displayName = username
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return model.AuthUser{}, model.ErrUserAlreadyExists
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", err.Error(), "password", http.StatusBadRequest)
	}

	now := s.now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         model.ParseRole(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	s.metrics.Registrations.Inc()
	return user.Public(), nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.AuthUser, error) {
	return s.users.List(ctx)
}

// UpdateUserRole changes a user's role. Role changes take effect on the very
// next request because the auth gate reads the live record, never the token.
func (s *AuthService) UpdateUserRole(ctx context.Context, actorID string, userID string, roleRaw string) (model.AuthUser, error) {
	role := model.ParseRole(roleRaw)
	if actorID == userID && role != model.RoleAdmin {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "cannot demote your own account", "id", http.StatusBadRequest)
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return model.AuthUser{}, err
	}

	return s.GetUserByID(ctx, userID)
}

// SetUserSuspension toggles the deactivation flag. Suspension locks the user
// out on their next request regardless of any outstanding token.
func (s *AuthService) SetUserSuspension(ctx context.Context, actorID string, userID string, suspended bool) (model.AuthUser, error) {
	if actorID == userID && suspended {
		return model.AuthUser{}, apierror.New("BAD_REQUEST", "cannot suspend your own account", "id", http.StatusBadRequest)
	}

	if err := s.users.SetSuspended(ctx, userID, suspended); err != nil {
		return model.AuthUser{}, err
	}

	return s.GetUserByID(ctx, userID)
}

// EnsureDefaultAdmin seeds the initial administrator on an empty install.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	now := s.now().UTC()
	admin := model.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: hash,
		DisplayName:  "Administrator",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}

	slog.Warn("seeded default admin account; change its password", "username", admin.Username)
	return nil
}
