package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/huangsam/workbench/internal/contract"
	"go.uber.org/zap"
)

// Server wraps an http.Server with explicit listen, serve and shutdown steps.
type Server struct {
	name   string
	addr   string
	server *http.Server

	mu  sync.Mutex
	lis net.Listener
}

// NewServer creates a server for handler on addr. Nothing is bound until Listen or Start.
func NewServer(name, addr string, handler http.Handler) *Server {
	return &Server{
		name: name,
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Listen binds the listen address.
func (s *Server) Listen() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		return s.lis.Addr().String()
	}
	return s.addr
}

// Serve accepts connections until Shutdown. A graceful shutdown returns nil.
func (s *Server) Serve() error {
	s.mu.Lock()
	lis := s.lis
	s.mu.Unlock()
	if lis == nil {
		return errors.New("server is not listening")
	}
	contract.Logger().Info("listening", zap.String("service", s.name), zap.String("addr", lis.Addr().String()))
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Start binds and serves.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	contract.Logger().Info("shutting down", zap.String("service", s.name))
	err := s.server.Shutdown(ctx)

	// A listener that never reached Serve is not tracked by http.Server
	s.mu.Lock()
	if s.lis != nil {
		_ = s.lis.Close()
	}
	s.mu.Unlock()
	return err
}
