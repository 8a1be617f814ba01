package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteSetsSecurityAttributes(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	Write(recorder, "signed-token", 7*24*time.Hour, true)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	require.Equal(t, "auth-token", cookie.Name)
	require.Equal(t, "signed-token", cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, 604800, cookie.MaxAge)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestWriteSecureOnlyInProduction(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	Write(recorder, "signed-token", time.Hour, false)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	require.False(t, cookies[0].Secure)
	require.True(t, cookies[0].HttpOnly)
}

func TestClearExpiresImmediately(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	Clear(recorder, true)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "auth-token", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "signed-token"})

		value, ok := Read(r)
		require.True(t, ok)
		require.Equal(t, "signed-token", value)
	})

	t.Run("absent is not an error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		value, ok := Read(r)
		require.False(t, ok)
		require.Empty(t, value)
	})

	t.Run("empty value counts as absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Cookie", CookieName+"=")

		_, ok := Read(r)
		require.False(t, ok)
	})
}
