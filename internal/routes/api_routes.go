package routes

import (
	"aeroportal/flightops/internal/api"
	"aeroportal/flightops/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, limiter *middleware.RateLimiter) {
	svc := deps.Services

	r.Route("/api/v1", func(v1 chi.Router) {
		if limiter != nil {
			v1.Use(limiter.Middleware)
		}
		v1.Use(middleware.AuthMiddleware(svc.Tokens)) // every route needs a caller identity

		// Read-only and computation endpoints (any role)
		v1.Get("/aerodromes/{icao}", api.GetAerodromeHandler(svc.Aerodromes))
		v1.Post("/flight-time/split", api.SplitFlightTimeHandler(svc.FlightTime))
		v1.Post("/flight-plans/parameters", api.FlightParametersHandler(svc.Planning))
		v1.Post("/flight-plans", api.PlanFlightHandler(svc.Planning))
		v1.Post("/weight-balance", api.WeightBalanceHandler(svc.Planning))
		v1.Get("/aircraft/{aircraft_id}/logbooks/{year}/{month}", api.GetLogbookHandler(svc.Logbook))
		v1.Get("/reports/crew-monthly", api.CrewMonthlyReportHandler(svc.CrewReports, svc.Exports))
		v1.Get("/expirations", api.ExpirationsHandler(svc.Expirations))

		// Logbook mutations
		v1.Group(func(operator chi.Router) {
			operator.Use(middleware.IsOperatorMiddleware())

			operator.Post("/aircraft/{aircraft_id}/logbooks", api.OpenLogbookHandler(svc.Logbook))
			operator.Post("/logbook-entries", api.CreateLogbookEntryHandler(svc.Logbook))
			operator.Delete("/logbook-entries/{entry_id}", api.DeleteLogbookEntryHandler(svc.Logbook))
		})

		// Reference data management
		v1.Group(func(admin chi.Router) {
			admin.Use(middleware.IsAdminMiddleware())

			admin.Post("/admin/aerodromes/sync", api.SyncAerodromesHandler(svc.AerodromeLoader))
		})
	})
}
