// Package server defines the Server container that composes the process's
// shared dependencies and runs the HTTP listener.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service
//   - platform client
//   - database pool (only with the postgres storage driver)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sistemasdevbackend/autocenter/internal/config"
	"github.com/sistemasdevbackend/autocenter/internal/database"
	loggerPkg "github.com/sistemasdevbackend/autocenter/internal/logger"
	"github.com/sistemasdevbackend/autocenter/internal/platform"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// Platform is always present: sign-in goes through it whatever the
	// storage driver.
	Platform *platform.Client

	// DB is nil unless the storage driver is postgres.
	DB *database.Database

	httpServer *http.Server
}

// New builds the platform client and, for the postgres driver, the pool.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	platformClient, err := platform.NewClient(cfg.Platform)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize platform client: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Platform:      platformClient,
	}

	if cfg.UsesPostgres() {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db
	}

	logger.Info().
		Str("storage_driver", cfg.Storage.Driver).
		Msg("server dependencies initialized")

	return server, nil
}

// SetupHTTPServer wraps handler in an http.Server using the configured
// timeouts (seconds).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, waits for in-flight ones until ctx
// expires, then closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}
