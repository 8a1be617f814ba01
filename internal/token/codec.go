// Package token signs and verifies the stateless session tokens. A token is a
// snapshot of the user's public fields at login time; it carries no revocation
// state, so callers must reconcile it against the live user record.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"team-dashboard/internal/model"
)

const DefaultLifetime = 7 * 24 * time.Hour

type Claims struct {
	UserID      string
	Username    string
	DisplayName string
	Role        model.Role
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

type Codec struct {
	secret   []byte
	lifetime time.Duration
}

func NewCodec(secret string, lifetime time.Duration) *Codec {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}

	return &Codec{secret: []byte(secret), lifetime: lifetime}
}

func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue signs a token for the given user, expiring lifetime after now.
func (c *Codec) Issue(user model.AuthUser, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":          user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"role":         string(user.Role),
		"iat":          now.Unix(),
		"exp":          now.Add(c.lifetime).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks signature and expiry as a unit. Any failure, from a flipped
// bit to a stale expiry, returns model.ErrInvalidToken and nothing else:
// callers treat every rejected token like no token at all.
func (c *Codec) Verify(tokenString string, now time.Time) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.Parse(tokenString, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &Claims{}
	claims.UserID, _ = claimsMap["sub"].(string)
	claims.Username, _ = claimsMap["username"].(string)
	claims.DisplayName, _ = claimsMap["display_name"].(string)
	if role, ok := claimsMap["role"].(string); ok {
		claims.Role = model.ParseRole(role)
	}
	if iat, ok := claimsMap["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := claimsMap["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}

	if claims.UserID == "" {
		return nil, model.ErrInvalidToken
	}

	return claims, nil
}
