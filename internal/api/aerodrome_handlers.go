package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"aeroportal/flightops/internal/auth"
	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/models/dtos"
	"aeroportal/flightops/internal/services"

	"github.com/go-chi/chi/v5"
)

// AerodromeImporter refreshes the aerodrome table from the configured source
// or from an uploaded airports.json document.
type AerodromeImporter interface {
	LoadFromSource(ctx context.Context) (int, error)
	LoadFromJSON(ctx context.Context, reader io.Reader) (int, error)
	Count(ctx context.Context) (int64, error)
}

// GetAerodromeHandler handles GET /api/v1/aerodromes/{icao}
func GetAerodromeHandler(resolver services.AerodromeResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		ad, err := resolver.Resolve(r.Context(), chi.URLParam(r, "icao"))
		if err != nil {
			respondServiceError(w, r, initTime, err, "resolve aerodrome")
			return
		}

		common.RespondSuccess(w, initTime, "Aerodrome found", ad)
	}
}

const maxAerodromeUpload = 64 << 20

// SyncAerodromesHandler handles POST /api/v1/admin/aerodromes/sync
// A non-empty body is imported instead of fetching the configured source.
func SyncAerodromesHandler(importer AerodromeImporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var (
			count  int
			err    error
			source = "configured source"
		)
		if r.ContentLength > 0 {
			source = "upload"
			count, err = importer.LoadFromJSON(r.Context(), http.MaxBytesReader(w, r.Body, maxAerodromeUpload))
		} else {
			count, err = importer.LoadFromSource(r.Context())
		}
		if err != nil {
			respondServiceError(w, r, initTime, err, "sync aerodromes")
			return
		}

		total, err := importer.Count(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err, "count aerodromes")
			return
		}

		logging.Info("Aerodromes synced", "by", claims.UserID(), "source", source, "imported", count)
		common.RespondSuccess(w, initTime, "Aerodromes synced successfully", dtos.AerodromeSyncResponse{
			Imported: count,
			Total:    total,
		})
	}
}
