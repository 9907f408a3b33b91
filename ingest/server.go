package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/aalemi-dev/spanbridge/logger"
	"github.com/aalemi-dev/spanbridge/observability"
	"github.com/aalemi-dev/spanbridge/receiver"
	"github.com/aalemi-dev/spanbridge/tracer"
)

// Server accepts HTrace JSON spans over HTTP and hands them to a receiver.
type Server struct {
	cfg      Config
	receiver receiver.SpanReceiver
	backend  tracer.Backend
	log      logger.Logger
	observer observability.Observer

	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// Option customizes a Server.
type Option func(*Server)

// WithObserver reports every request to o.
func WithObserver(o observability.Observer) Option {
	return func(s *Server) {
		s.observer = o
	}
}

// WithBackend lets the health endpoint report the backend state. Without it
// /healthz always answers 200.
func WithBackend(b tracer.Backend) Option {
	return func(s *Server) {
		s.backend = b
	}
}

// NewServer builds the endpoint. It does not listen until Start.
//
//	srv := ingest.NewServer(ingest.Config{Address: ":5151"}, rcv, log,
//	    ingest.WithBackend(backend))
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Shutdown(context.Background())
func NewServer(cfg Config, rcv receiver.SpanReceiver, log logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		cfg:      cfg.withDefaults(),
		receiver: rcv,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the endpoint's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(SpansPath, s.handleSpans)
	mux.HandleFunc(HealthPath, s.handleHealth)
	return mux
}

// Start binds the listen address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.log.Info("starting span ingest server", nil, map[string]interface{}{
		"address": ln.Addr().String(),
	})

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("span ingest server stopped", err, nil)
		}
	}()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Address
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down span ingest server", nil, nil)
	return s.httpServer.Shutdown(ctx)
}
