package routes

import (
	"net/http"
	"time"

	"aeroportal/flightops/internal/api"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes builds the HTTP handler: health and metrics at the root, the
// engine under /api/v1.
func RegisterRoutes(deps *api.Dependencies, gatherer prometheus.Gatherer, limiter *middleware.RateLimiter, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/healthCheck", api.HealthCheckHandler(deps.SQL, deps.Services.Cache, upSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	RegisterAPIRoutes(r, deps, limiter)

	if deps.Services.Tokens == nil {
		logging.Warn("JWT_SECRET is empty, API authentication is disabled")
	}
	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
