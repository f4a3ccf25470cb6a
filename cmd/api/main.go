// Command api is the Graphisizer API server.
//
// Usage:
//
//	graphisizer-api
//	API_PORT=8080 graphisizer-api

// @title Graphisizer API
// @version 1.0.0
// @description Visualization backend for World Cube Association competition results: normalized result series, formatted values, descriptive and comparative statistics, and shareable dashboard state.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Graphisizer
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/roowus/graphisizer/internal/api"
	"github.com/roowus/graphisizer/internal/cache"
	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/graph"
	"github.com/roowus/graphisizer/internal/wca"

	_ "github.com/roowus/graphisizer/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Upstream WCA client and graph manager
	client := wca.NewClient(cfg, logger)
	manager := graph.NewManager(client, logger)

	// Create router
	router := api.NewRouter(client, manager, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Graphisizer API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Let in-flight graph fetches settle before the server stops
	manager.Wait()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Stopped")
}
