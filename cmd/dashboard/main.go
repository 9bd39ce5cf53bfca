// Command dashboard serves the cricket insights page and the report API.
//
// Usage:
//
//	cricket-dashboard
//	DATASET_PATH=/data/cricket_matches.db API_PORT=8080 cricket-dashboard
//	DATASET_DRIVER=pgx DATABASE_URL=postgres://... cricket-dashboard

// @title Cricket Insights API
// @version 1.0.0
// @description Read-only cricket statistics: twenty fixed aggregate reports over Test, ODI and T20 delivery tables.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name albapepper
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

	"github.com/albapepper/cricket-insights/internal/api"
	"github.com/albapepper/cricket-insights/internal/cache"
	"github.com/albapepper/cricket-insights/internal/config"
	"github.com/albapepper/cricket-insights/internal/dataset"
	"github.com/albapepper/cricket-insights/internal/maintenance"

	_ "github.com/albapepper/cricket-insights/docs" // swagger docs
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

	// Dataset handles are opened per query; this only checks it is readable.
	ds, err := dataset.New(cfg)
	if err != nil {
		logger.Error("Invalid dataset configuration", "error", err)
		os.Exit(1)
	}
	checkCtx, checkCancel := context.WithTimeout(ctx, 10*time.Second)
	if _, err := ds.CheckSchema(checkCtx); err != nil {
		// The page still serves; failing sections show their error inline.
		logger.Warn("Dataset not ready", "driver", ds.Driver(), "error", err)
	} else {
		logger.Info("Dataset ready", "driver", ds.Driver(), "path", cfg.DatasetPath)
	}
	checkCancel()

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled, cfg.CacheTTL)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	// Start maintenance tickers (cache purge, dataset watch)
	go maintenance.New(ds, appCache, logger).Start(ctx, maintenance.Config{
		CachePurgeInterval:   cfg.CachePurgeInterval,
		DatasetWatchInterval: cfg.DatasetWatchInterval,
	})

	// Create router
	router := api.NewRouter(ds, appCache, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Cricket Insights dashboard",
			"addr", addr,
			"environment", cfg.Environment,
			"dashboard", fmt.Sprintf("http://localhost:%d/", cfg.APIPort),
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

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
