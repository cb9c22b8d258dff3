package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// headerTracker records whether a response has started.
type headerTracker struct {
	http.ResponseWriter

	started bool
}

func (w *headerTracker) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.started = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *headerTracker) Write(b []byte) (int, error) {
	w.started = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

func (w *headerTracker) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery turns a panic in a downstream handler into a 500 response and an
// error log carrying the stack. http.ErrAbortHandler is re-raised. When the
// response has already started only the log is written.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &headerTracker{ResponseWriter: w, started: false}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := []any{
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}

				if reqID := GetRequestID(r.Context()); reqID != "" {
					attrs = append(attrs, slog.String("request_id", reqID))
				}

				if tw.started {
					slog.Error("panic recovered after response started", attrs...) //nolint:gosec

					return
				}

				slog.Error("panic recovered", attrs...) //nolint:gosec // G706: message is a hardcoded constant.

				http.Error(tw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(tw, r)
		})
	}
}
