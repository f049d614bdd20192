package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dmitrymomot/pagevisits/core/logger"
)

// Server runs an http.Server on its own listener and shuts it down
// gracefully. Safe for concurrent use.
type Server struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	listener net.Listener
	server   *http.Server
}

// New creates a Server listening on addr with DefaultConfig limits.
func New(addr string, opts ...Option) *Server {
	cfg := DefaultConfig()
	cfg.Addr = addr
	return newServer(cfg, opts)
}

func newServer(cfg Config, opts []Option) *Server {
	s := &Server{cfg: cfg, logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("server"))
	return s
}

// Start binds the listener and serves until ctx is canceled or serving
// fails. It returns ctx.Err() on cancellation; call Stop to drain requests.
// Request contexts derive from ctx but are not canceled with it.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrListen, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.listener, s.server = ln, srv
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "listening", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Join(ErrHTTPServer, err)
		}
	}()

	select {
	case err := <-errCh:
		s.reset(srv)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the bound address while serving and the configured one
// otherwise.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Stop drains in-flight requests within the shutdown timeout.
// It is a no-op when the server is not running.
func (s *Server) Stop() error {
	s.mu.RLock()
	srv := s.server
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	defer s.reset(srv)

	s.logger.Info("shutting down", slog.Duration("timeout", s.cfg.ShutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown failed", logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}

	s.logger.Info("stopped")
	return nil
}

// reset forgets srv if it is still the current server.
func (s *Server) reset(srv *http.Server) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == srv {
		s.server, s.listener = nil, nil
	}
}

// Run returns a function for errgroup.Group.Go that serves until ctx is
// canceled and then stops gracefully. Cancellation is not an error.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, handler)
		if stopErr := s.Stop(); stopErr != nil {
			return stopErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}
