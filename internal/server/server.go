// Package server owns the lifecycle of the document store's inbound
// transport: start, signal-driven shutdown, graceful stop.
package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/adilfashion/tailorsync/internal/config"
	"github.com/adilfashion/tailorsync/internal/logger"
)

// Server is the lifecycle contract for the transport server. RunServer blocks
// until shutdown is requested; Shutdown stops it gracefully.
type Server interface {
	RunServer()
	Shutdown()
}

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer creates the HTTP transport serving router at cfg.HTTPAddress.
func NewServer(router *chi.Mux, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(router, cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
