package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// statusWriter captures the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n

	return n, err //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Logging logs one record per request via the global slog logger: method,
// path, matched route, status, response size, duration and request ID.
// Each name in headers adds the response header of that name as an attribute,
// keyed by its lower-cased name.
// Log level is Info below 400, Warn for 4xx and Error for 5xx.
func Logging(headers ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: 0, bytes: 0}

			next.ServeHTTP(sw, r)

			if sw.status == 0 {
				sw.status = http.StatusOK
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
			}

			// ServeMux records the matched pattern on the request it was given.
			if r.Pattern != "" {
				attrs = append(attrs, slog.String("route", r.Pattern))
			}

			for _, name := range headers {
				if value := sw.Header().Get(name); value != "" {
					attrs = append(attrs, slog.String(strings.ToLower(name), value))
				}
			}

			if reqID := GetRequestID(r.Context()); reqID != "" {
				attrs = append(attrs, slog.String("request_id", reqID))
			}

			const msg = "http request"

			switch {
			case sw.status >= http.StatusInternalServerError:
				slog.Error(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
			case sw.status >= http.StatusBadRequest:
				slog.Warn(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
			default:
				slog.Info(msg, attrs...) //nolint:gosec // G706: msg is a hardcoded constant, not user input.
			}
		})
	}
}
