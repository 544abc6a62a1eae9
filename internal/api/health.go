package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(db *sqlx.DB, cache common.CacheInterface, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "Database connected (" + db.DriverName() + ")"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services["database"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		cacheStatus := entities.ServiceStatus{Status: "ok", Details: cache.Name()}
		if p, ok := cache.(pinger); ok {
			if err := p.Ping(ctx); err != nil {
				cacheStatus = entities.ServiceStatus{Status: "down", Details: err.Error()}
			}
		}
		services["cache"] = cacheStatus

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
