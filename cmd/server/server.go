package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hvac-serwis-server/internal/config"
	"hvac-serwis-server/internal/db"
	"hvac-serwis-server/internal/gateway"
	"hvac-serwis-server/internal/handlers"
	"hvac-serwis-server/internal/models"
	"hvac-serwis-server/internal/services"
	"hvac-serwis-server/internal/sms"
	"hvac-serwis-server/pkg/logger"
	"hvac-serwis-server/router"

	"go.uber.org/zap"
)

// SetupServer initializes and returns a configured HTTP server
func SetupServer(cfg *config.Config) (*http.Server, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}

	if cfg.Server.Port <= 0 {
		return nil, errors.New("invalid server port")
	}

	// Initialize database
	database, err := db.NewDatabase(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	clientRepo := db.NewClientRepository(database.GetDB())
	smsLogRepo := db.NewSMSLogRepository(database.GetDB())

	// Initialize services
	rosterService := services.NewRosterService(clientRepo, smsLogRepo)
	notices := services.NewNoticeBoard()
	gw := gateway.New(cfg.SMSGateway.BaseURL, cfg.GatewayTimeout())
	sender := services.NewRecordingSender(gw, clientRepo, smsLogRepo)
	controller := sms.NewController(gw, sender, notices, notices.ShowSuccess)

	// Seed roster from the previous office tooling's export if enabled
	if cfg.Seed.Enable {
		if err := seedClients(rosterService, cfg.Seed.File); err != nil {
			return nil, fmt.Errorf("failed to seed clients: %w", err)
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	clientHandler := handlers.NewClientHandler(rosterService)
	smsHandler := handlers.NewSMSHandler(controller, rosterService, notices)

	r := router.New(cfg, authHandler, clientHandler, smsHandler)

	// Create server with security timeouts
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return srv, nil
}

// seedClients imports the JSON export at path into an empty roster.
func seedClients(rosterService *services.RosterService, path string) error {
	if path == "" {
		return errors.New("seed file path is required")
	}

	existing, err := rosterService.Roster(models.DefaultRosterQuery())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Roster already populated, skipping seed",
			zap.Int("clients", len(existing)))
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var records []models.ClientImport
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	created, err := rosterService.Import(records)
	if err != nil {
		return err
	}
	logger.Info("Seeded client roster", zap.Int("created", created))
	return nil
}

// StartServer starts the HTTP server and handles graceful shutdown
func StartServer(srv *http.Server) error {
	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	return shutdown(srv)
}

// StartServerWithContext runs the server until ctx is cancelled.
func StartServerWithContext(ctx context.Context, srv *http.Server) error {
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	return shutdown(srv)
}

func shutdown(srv *http.Server) error {
	// Create a timeout context for shutdown
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
