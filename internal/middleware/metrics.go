package middleware

import (
	"net/http"
	"strconv"
	"time"

	"team-dashboard/internal/metrics"
)

// Metrics records request durations labelled by method and status class.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			m.RequestDurationMs.
				WithLabelValues(r.Method, strconv.Itoa(wrapped.status)).
				Observe(float64(time.Since(started).Milliseconds()))
		})
	}
}
