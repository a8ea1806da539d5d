// Package middleware provides the HTTP middleware of the PageCraft API:
// bearer authentication, role gates, rate limiting, request logging,
// panic recovery and security headers.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// responseWriter wraps http.ResponseWriter to capture the status code and
// the number of body bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
	written    bool
}

// WriteHeader captures the status code before writing it.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Write ensures a default 200 status if WriteHeader was never called.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Logger records method, path, status, size, duration and caller for every
// request. Server errors are logged at error level, client errors at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		level := slog.LevelInfo
		switch {
		case wrapped.statusCode >= 500:
			level = slog.LevelError
		case wrapped.statusCode >= 400:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"bytes", wrapped.bytes,
			"duration", time.Since(start).String(),
			"remote", clientIP(r),
		}
		if id := RequestID(r.Context()); id != "" {
			attrs = append(attrs, "request_id", id)
		}
		if user := UserFromCtx(r.Context()); user != nil {
			attrs = append(attrs, "user_id", user.ID.String())
		}

		slog.Log(r.Context(), level, "http request", attrs...)
	})
}

// RequestID returns the id assigned by chi's RequestID middleware, or "".
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
