package middleware

import (
	"net/http"
	"strconv"
	"time"

	"venue-console/internal/observability"
)

// Metrics records request counts and latency for the stub backend.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(ww.statusCode)

			observability.BackendRequestDuration.WithLabelValues(
				r.Method, r.URL.Path, status).Observe(duration)
			observability.BackendRequestsTotal.WithLabelValues(
				r.Method, r.URL.Path, status).Inc()
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
