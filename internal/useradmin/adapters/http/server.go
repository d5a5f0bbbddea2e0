package http

import (
	"context"
	"fmt"
	"net"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"useradmin/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting = "Starting HTTP server"
	LogServerStarted  = "HTTP server started"
	LogServerStopping = "Stopping HTTP server"
	LogServerStopped  = "HTTP server stopped"
	ErrServerStart    = "failed to start HTTP server"
	ErrServerStop     = "failed to stop HTTP server"
)

// Server запускает приложение fiber на TCP адресе.
type Server struct {
	app      *fiber.App
	address  string
	listener net.Listener
}

// NewServer создает сервер.
func NewServer(app *fiber.App, address string) *Server {
	return &Server{app: app, address: address}
}

// Start открывает порт и обслуживает запросы в отдельной горутине.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStarting, zap.String("address", s.address))

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}
	s.listener = listener

	go func() {
		if err := s.app.Listener(listener, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Stop завершает обработку запросов в пределах ctx.
func (s *Server) Stop(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		log.Error(ctx, ErrServerStop, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStop, err)
	}

	log.Info(ctx, LogServerStopped)
	return nil
}
