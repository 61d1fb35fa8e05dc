// Package server exposes wrapper generation over HTTP
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// ServerConfig holds configuration for the generation server
type ServerConfig struct {
	// Addr is the address to listen on (default: ":8080", or ":$PORT")
	Addr string

	// BodyLimit caps request bodies, in echo's size notation (default: "4M")
	BodyLimit string

	// EnableLogger enables request logging middleware
	EnableLogger bool

	// ShutdownTimeout is the timeout for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a server configuration with sensible defaults
func DefaultServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &ServerConfig{
		Addr:            ":" + port,
		BodyLimit:       "4M",
		EnableLogger:    true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server wraps an Echo instance serving the generation API
type Server struct {
	echo        *echo.Echo
	config      *ServerConfig
	diagnostics *utils.DiagnosticSystem
}

// NewServer creates a new server with the given configuration
func NewServer(config *ServerConfig, diagnostics *utils.DiagnosticSystem) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if config.BodyLimit != "" {
		e.Use(middleware.BodyLimit(config.BodyLimit))
	}
	if config.EnableLogger {
		e.Use(middleware.Logger())
	}

	s := &Server{
		echo:        e,
		config:      config,
		diagnostics: diagnostics,
	}
	s.registerRoutes()
	return s
}

// Echo returns the underlying Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.health)
	s.echo.POST("/v1/generate", s.generate)
}

// Start serves requests until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.diagnostics.Info("Listening on %s", s.config.Addr)
		if err := s.echo.Start(s.config.Addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.diagnostics.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.diagnostics.Info("Server shutdown complete")
	return nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
