package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/roowus/graphisizer/internal/api/handler"
	"github.com/roowus/graphisizer/internal/cache"
	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/graph"
	"github.com/roowus/graphisizer/internal/wca"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(client *wca.Client, manager *graph.Manager, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(client, manager, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Search / autocomplete
		r.Get("/search", h.Search)

		// Stateless series lookup
		r.Get("/persons/{wcaID}/series", h.GetPersonSeries)

		// Dashboard graph set
		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", h.AddGraph)
			r.Get("/", h.ListGraphs)
			r.Get("/stats", h.GetGraphStats)
			r.Get("/table", h.GetGraphTable)
			r.Get("/{graphID}", h.GetGraph)
			r.Put("/{graphID}", h.EditGraph)
			r.Delete("/{graphID}", h.RemoveGraph)
		})

		// Shareable state
		r.Get("/state", h.GetState)
		r.Put("/state", h.PutState)
		r.Put("/view", h.PutView)
	})

	return r
}
