package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitAuthBucketIsTighter(t *testing.T) {
	t.Parallel()

	handler := NewRateLimitMiddleware(100, 1).Handler(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))

	// The general bucket for the same client is unaffected.
	general := httptest.NewRecorder()
	handler.ServeHTTP(general, httptest.NewRequest(http.MethodGet, "/api/v1/templates", nil))
	assert.Equal(t, http.StatusOK, general.Code)
}

func TestRateLimitTracksClientsIndependently(t *testing.T) {
	t.Parallel()

	handler := NewRateLimitMiddleware(100, 1).Handler(okHandler())

	reqA := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	reqA.Header.Set("X-Forwarded-For", "10.0.0.1")
	recA := httptest.NewRecorder()
	handler.ServeHTTP(recA, reqA)
	require.Equal(t, http.StatusOK, recA.Code)

	reqA2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	reqA2.Header.Set("X-Forwarded-For", "10.0.0.1")
	recA2 := httptest.NewRecorder()
	handler.ServeHTTP(recA2, reqA2)
	require.Equal(t, http.StatusTooManyRequests, recA2.Code)

	reqB := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	reqB.Header.Set("X-Forwarded-For", "10.0.0.2")
	recB := httptest.NewRecorder()
	handler.ServeHTTP(recB, reqB)
	assert.Equal(t, http.StatusOK, recB.Code)
}

func TestExtractClientIP(t *testing.T) {
	t.Parallel()

	t.Run("prefers forwarded header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "203.0.113.9", extractClientIP(r))
	})

	t.Run("falls back to real ip then remote addr", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Real-IP", "203.0.113.10")
		assert.Equal(t, "203.0.113.10", extractClientIP(r))

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "192.0.2.1:51234"
		assert.Equal(t, "192.0.2.1", extractClientIP(r))
	})

	t.Run("defaults and fallbacks are applied", func(t *testing.T) {
		limiter := NewRateLimitMiddleware(0, 0)
		assert.Equal(t, 100, limiter.generalRPM)
		assert.Equal(t, 10, limiter.authRPM)
	})
}
