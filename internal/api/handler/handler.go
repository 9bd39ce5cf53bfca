// Package handler provides HTTP handlers for the dashboard page and the
// report API. Handlers run catalog entries directly against the dataset;
// there is no service layer.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/cricket-insights/internal/api/respond"
	"github.com/albapepper/cricket-insights/internal/cache"
	"github.com/albapepper/cricket-insights/internal/config"
	"github.com/albapepper/cricket-insights/internal/dataset"
	"github.com/albapepper/cricket-insights/internal/report"
)

// Store is the read side of the dataset the handlers need.
type Store interface {
	report.Querier
	Ping(ctx context.Context) error
	CheckSchema(ctx context.Context) ([]dataset.TableStatus, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  Store
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(store Store, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
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

// HealthCheckDB verifies the dataset opens and every format table matches
// the delivery schema.
// @Summary Dataset health check
// @Description Opens the dataset and checks each format table exposes the delivery columns.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("Dataset ping failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"dataset":   "unavailable",
			"error":     "Dataset could not be opened",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	tables, err := h.store.CheckSchema(r.Context())
	if err != nil {
		h.logger.Warn("Dataset schema check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"dataset":   "schema_mismatch",
			"tables":    tables,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"dataset":   "connected",
		"tables":    tables,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns report cache statistics (enabled, ttl, active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
