package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/0xalexb/hjarta-nullcfg/listener/middleware"
	"github.com/0xalexb/hjarta-nullcfg/store"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server serves a store over HTTP.
type Server struct {
	name       string
	file       string
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer creates a Server exposing st under the given name. It sets config
// defaults and validates the config. The onServeErr callback, if non-nil, is
// called when the background Serve goroutine fails.
func NewServer(name string, st *store.Store, cfg Config, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if st == nil {
		return nil, ErrNilStore
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	handler := middleware.Chain(NewHandler(st, cfg),
		middleware.RequestID(),
		middleware.Logging(KindHeader),
		middleware.Recovery(),
		middleware.MaxRequestSize(cfg.MaxBodyBytes),
	)

	return &Server{
		name: name,
		file: st.Config().Path,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		listener:   nil,
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the bound address once started, or the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.server.Addr
}

// Start begins listening on TCP and serves HTTP requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		slog.Error("failed to listen", "name", s.name, "address", s.server.Addr, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	slog.Info("serving config", "name", s.name, "address", listener.Addr().String(), "file", s.file)

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("config listener error", "name", s.name, "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping config listener", "name", s.name)

	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "name", s.name, "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
