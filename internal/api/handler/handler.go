// Package handler provides HTTP handlers for all API endpoints.
// Each content handler runs one pipeline operation and writes its envelope;
// the pipeline owns caching, so handlers only translate URLs and errors.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-tables/internal/api/respond"
	"github.com/albapepper/scoracle-tables/internal/cache"
	"github.com/albapepper/scoracle-tables/internal/config"
	"github.com/albapepper/scoracle-tables/internal/pipeline"
)

// Stats reports key-value store counters; every kv.Store implements it.
type Stats interface {
	Stats() map[string]interface{}
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc     *pipeline.Service
	cache   *cache.Cache
	store   Stats
	dbCheck func(ctx context.Context) error
	cfg     *config.Config
}

// New creates a Handler with shared dependencies. dbCheck pings the SQL
// backend and is nil for the memory backend.
func New(svc *pipeline.Service, c *cache.Cache, store Stats, dbCheck func(ctx context.Context) error, cfg *config.Config) *Handler {
	return &Handler{
		svc:     svc,
		cache:   c,
		store:   store,
		dbCheck: dbCheck,
		cfg:     cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and supported leagues.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Tables API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"help":    "/help",
		"leagues": config.LeagueCodes(),
		"optimizations": []string{
			"fingerprinted_response_cache",
			"rate_limited_upstream",
			"gzip_compression",
			"etag_support",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies connectivity of the SQL key-value backend.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.dbCheck == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not_configured",
			"backend":   h.cfg.KVBackend,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.dbCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"backend":   h.cfg.KVBackend,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns key-value store statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"enabled":   h.cache.Enabled(),
		"cache":     h.store.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
