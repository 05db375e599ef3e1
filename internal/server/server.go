// Package server runs the local HTTP surface with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/chronoworld/showtimes/internal/log"
)

// Config holds configuration for the server lifecycle.
type Config struct {
	// ReadTimeout is the HTTP read timeout
	ReadTimeout time.Duration
	// WriteTimeout is the HTTP write timeout
	WriteTimeout time.Duration
	// IdleTimeout is the HTTP idle timeout
	IdleTimeout time.Duration
	// ShutdownTimeout bounds how long in-flight requests may take to finish.
	// Default: 15 seconds
	ShutdownTimeout time.Duration
}

// Server wraps an http.Server, tracking in-flight requests and rejecting new
// ones once shutdown begins.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration

	inFlight     int64
	shuttingDown int32
}

// New creates a server for handler. The handler is wrapped so requests
// arriving during shutdown get 503.
func New(addr string, handler http.Handler, cfg Config) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}

	s := &Server{shutdownTimeout: cfg.ShutdownTimeout}
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.track(handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		log.Logger().Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	atomic.StoreInt32(&s.shuttingDown, 1)
	log.Logger().Info().Int64("in_flight", s.InFlightCount()).Msg("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

// IsShuttingDown returns true if shutdown has been initiated.
func (s *Server) IsShuttingDown() bool {
	return atomic.LoadInt32(&s.shuttingDown) == 1
}

// InFlightCount returns the current number of in-flight requests.
func (s *Server) InFlightCount() int64 {
	return atomic.LoadInt64(&s.inFlight)
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.IsShuttingDown() {
			w.Header().Set("Connection", "close")
			http.Error(w, "Service Unavailable - Shutting Down", http.StatusServiceUnavailable)
			return
		}
		atomic.AddInt64(&s.inFlight, 1)
		defer atomic.AddInt64(&s.inFlight, -1)

		next.ServeHTTP(w, r)
	})
}
