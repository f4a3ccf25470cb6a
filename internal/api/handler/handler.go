// Package handler provides HTTP handlers for all API endpoints. Handlers
// call the WCA client and the graph manager directly — no service layer.
package handler

import (
	"net/http"
	"time"

	"github.com/roowus/graphisizer/internal/api/respond"
	"github.com/roowus/graphisizer/internal/cache"
	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/graph"
	"github.com/roowus/graphisizer/internal/wca"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	wca     *wca.Client
	manager *graph.Manager
	cache   *cache.Cache
	cfg     *config.Config
}

// New creates a Handler with shared dependencies.
func New(client *wca.Client, manager *graph.Manager, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{
		wca:     client,
		manager: manager,
		cache:   c,
		cfg:     cfg,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Graphisizer API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
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

// HealthCheckCache reports cache occupancy.
// @Summary Cache health check
// @Description Returns cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} cache.Stats
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.cache.Snapshot())
}
