package middleware

import (
	"log/slog"
	"net/http"
)

// DefaultMaxRequestSize is the body limit used when a non-positive one is given.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize limits request bodies to limit bytes. A request whose
// Content-Length already exceeds the limit is answered with 413 without
// reaching the handler; otherwise the body is wrapped with
// http.MaxBytesReader, and handlers should map *http.MaxBytesError to 413.
func MaxRequestSize(limit int64) Middleware {
	if limit <= 0 {
		slog.Warn("middleware: request size limit must be positive, using default",
			"provided", limit, "default", DefaultMaxRequestSize)

		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
