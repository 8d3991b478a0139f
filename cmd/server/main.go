// Package main is the entry point for the comps spreader API.
// The API turns free-text questions about public companies into a comparable
// companies table (enterprise value plus valuation multiples) and answers
// follow-up questions about that table.
//
// The application follows the same layering throughout:
// - Domain types and collaborator interfaces in internal/domain
// - External clients (Yahoo Finance, LLM providers) in internal/clients
// - Business logic in internal/modules
// - Dependency injection via the DI container
// - HTTP handlers registered on a chi router
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/comps/internal/config"
	"github.com/aristath/comps/internal/di"
	"github.com/aristath/comps/internal/server"
	"github.com/aristath/comps/pkg/logger"
)

// main is the application entry point. It orchestrates the startup sequence:
// 1. Loads configuration from environment variables (.env file supported)
// 2. Initializes the logging system
// 3. Wires all dependencies via the DI container (clients, services, jobs)
// 4. Starts the HTTP server and the background scheduler
// 5. Waits for a shutdown signal and performs graceful shutdown
func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		// This ensures we can log the configuration error even if config loading fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger with config level
	// Pretty mode enables human-readable output for development; disable it
	// with LOG_PRETTY=false to get JSON lines for log shippers
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "comps-api",
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Int("port", cfg.Port).
		Str("llm_provider", cfg.LLM.Provider).
		Str("market_data_provider", cfg.MarketData.Provider).
		Msg("Starting comps API")

	// Root context for client initialization
	// Cancelled on shutdown so in-flight provider setup does not outlive the process
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire all dependencies using DI container
	// - Market data provider (go-yfinance or raw quote endpoint)
	// - Optional LLM provider (Claude or Gemini); nil means regex extraction and rule-based chat
	// - Symbol cache, gateway, ticker resolver, analysis pipeline, chat responder
	// - Scheduler with the optional cache reset job
	container, err := di.Wire(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	// HTTP server
	// Routes, middleware and CORS are configured in internal/server
	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
	})

	// Start server in a goroutine so we can listen for shutdown signals
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	// The HTTP server is given up to 10 seconds to finish processing in-flight requests.
	// The scheduler is stopped first so no cache reset runs mid-shutdown.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// All dependency wiring is handled by di.Wire()
// The DI container initializes:
//   - internal/di/services.go (clients and services)
//   - internal/di/jobs.go (scheduler and jobs)
//   - internal/di/wire.go (main orchestration)
