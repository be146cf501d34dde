// Command api is the Scoracle Tables API server.
//
// Usage:
//
//	scoracle-api
//	API_PORT=8080 KV_BACKEND=sqlite scoracle-api

// @title Scoracle Tables API
// @version 1.0.0
// @description Sports stats scraped from provider HTML tables and normalized into JSON envelopes.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-tables/internal/api"
	"github.com/albapepper/scoracle-tables/internal/api/handler"
	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/fetch"
	"github.com/albapepper/scoracle-tables/internal/kv"
	"github.com/albapepper/scoracle-tables/internal/maintenance"
	"github.com/albapepper/scoracle-tables/internal/metrics"
	"github.com/albapepper/scoracle-tables/internal/pipeline"

	_ "github.com/albapepper/scoracle-tables/docs" // swagger docs
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

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Open key-value store
	backend, err := kv.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open key-value store", "backend", cfg.KVBackend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	m := metrics.New()

	// Initialize cache
	appCache := cache.New(backend, cache.Options{
		Enabled:    cfg.CacheEnabled,
		DefaultTTL: cfg.CacheDefaultTTL,
		Logger:     logger,
		Observer:   m,
	})
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "backend", cfg.KVBackend)

	fetcher := fetch.New(fetch.Options{
		BaseURL:           cfg.UpstreamBaseURL,
		Timeout:           cfg.UpstreamTimeout,
		RequestsPerMinute: cfg.UpstreamRequestsPerMinute,
		UserAgent:         cfg.UpstreamUserAgent,
		Logger:            logger,
		Observer:          m,
	})

	svc := pipeline.New(pipeline.Deps{
		Fetcher:             fetcher,
		Cache:               appCache,
		Store:               backend,
		Logger:              logger,
		Observer:            m,
		ScheduleConcurrency: cfg.ScheduleFetchConcurrency,
	})

	// Start maintenance tickers (expired key purge, optional warm pass)
	warm := func(ctx context.Context) string {
		result := svc.Warm(ctx, cfg.WarmLeagues, cfg.WarmWorkers)
		return result.Summary()
	}
	go maintenance.Start(ctx, backend, warm, maintenance.Config{
		PurgeInterval: cfg.KVPurgeInterval,
		WarmInterval:  cfg.WarmInterval,
	}, logger)

	// Create router
	h := handler.New(svc, appCache, backend, backend.Check, cfg)
	router := api.NewRouter(h, m, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute, // cold schedules fetch many pages
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Tables API",
			"addr", addr,
			"environment", cfg.Environment,
			"upstream", cfg.UpstreamBaseURL,
			"leagues", strings.Join(config.LeagueCodes(), ","),
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
