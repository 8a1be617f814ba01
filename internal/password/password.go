// Package password wraps bcrypt hashing for staff credentials.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps a single verification in the tens of milliseconds, which is
// the brute-force deterrent we want for an interactive login.
const cost = 12

// bcrypt silently truncates beyond 72 bytes, so longer input is rejected
// instead of being hashed with data dropped.
const maxLen = 72

var (
	ErrEmpty   = errors.New("password must not be empty")
	ErrTooLong = errors.New("password exceeds 72 bytes")
)

func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmpty
	}
	if len(plaintext) > maxLen {
		return "", ErrTooLong
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is an
// ordinary mismatch, never an error.
func Verify(plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
