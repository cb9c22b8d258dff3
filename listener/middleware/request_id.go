package middleware

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"
)

const (
	// RequestIDHeader is the HTTP header used for request IDs.
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{} //nolint:gochecknoglobals

// idSource issues IDs of the form <instance>-<sequence>. The instance part
// hashes the hostname, pid and start time, so IDs from restarted processes on
// the same host do not collide.
type idSource struct {
	instance uint32
	seq      atomic.Uint64
}

func newIDSource() *idSource {
	hostname, err := os.Hostname()
	if err != nil {
		slog.Warn("middleware: hostname unavailable for request IDs", "error", err)
	}

	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%s/%d/%d", hostname, os.Getpid(), time.Now().UnixNano())

	return &idSource{instance: h.Sum32()}
}

func (s *idSource) next() string {
	return fmt.Sprintf("%08x-%08x", s.instance, s.seq.Add(1))
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	val, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}

	return val
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}

	return true
}

// RequestID tags every request with an ID, stored in the request context and
// echoed in the X-Request-ID response header. A well-formed incoming
// X-Request-ID is reused.
func RequestID() Middleware {
	src := newIDSource()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = src.next()
			}

			w.Header().Set(RequestIDHeader, id)

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
		})
	}
}
