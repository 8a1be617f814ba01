// Package session binds the signed token to its HTTP cookie.
package session

import (
	"net/http"
	"time"
)

const CookieName = "auth-token"

// Write attaches the token to the response. HttpOnly keeps it away from
// scripts; Secure is enabled only for production deployments so local HTTP
// development still works.
func Write(w http.ResponseWriter, token string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie immediately rather than waiting for its max-age.
func Clear(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts the raw token. A missing cookie is the normal "no session"
// outcome, not an error.
func Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
