package api

import (
	"context"
	"net/http"
	"time"

	"aeroportal/flightops/internal/auth"
	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// LogbookManager reads and mutates aircraft logbooks.
type LogbookManager interface {
	GetLogbook(ctx context.Context, aircraftID string, month, year int) (*dtos.LogbookResponse, error)
	OpenLogbook(ctx context.Context, aircraftID string, month, year int, revisionHours *float64) (*dtos.LogbookResponse, error)
	CreateLogbookEntry(ctx context.Context, req dtos.CreateLogbookEntryRequest) (*dtos.LogbookEntryResult, error)
	DeleteLogbookEntry(ctx context.Context, entryID string) (*dtos.LogbookEntryResult, error)
}

// GetLogbookHandler handles GET /api/v1/aircraft/{aircraft_id}/logbooks/{year}/{month}
func GetLogbookHandler(logbooks LogbookManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		year, ok := intParam(w, initTime, "year", chi.URLParam(r, "year"))
		if !ok {
			return
		}
		month, ok := intParam(w, initTime, "month", chi.URLParam(r, "month"))
		if !ok {
			return
		}

		lb, err := logbooks.GetLogbook(r.Context(), chi.URLParam(r, "aircraft_id"), month, year)
		if err != nil {
			respondServiceError(w, r, initTime, err, "load logbook")
			return
		}

		common.RespondSuccess(w, initTime, "Logbook loaded", lb)
	}
}

// OpenLogbookHandler handles POST /api/v1/aircraft/{aircraft_id}/logbooks
func OpenLogbookHandler(logbooks LogbookManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.OpenLogbookRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		lb, err := logbooks.OpenLogbook(r.Context(), chi.URLParam(r, "aircraft_id"), req.Month, req.Year, req.RevisionHours)
		if err != nil {
			respondServiceError(w, r, initTime, err, "open logbook")
			return
		}

		common.RespondSuccess(w, initTime, "Logbook opened", lb, http.StatusCreated)
	}
}

// CreateLogbookEntryHandler handles POST /api/v1/logbook-entries
func CreateLogbookEntryHandler(logbooks LogbookManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateLogbookEntryRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		result, err := logbooks.CreateLogbookEntry(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err, "create logbook entry")
			return
		}

		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			logging.Info("Logbook entry recorded", "by", claims.UserID(), "entry_id", result.Entry.ID, "request_id", requestID(r))
		}
		common.RespondSuccess(w, initTime, "Logbook entry created", result, http.StatusCreated)
	}
}

// DeleteLogbookEntryHandler handles DELETE /api/v1/logbook-entries/{entry_id}
func DeleteLogbookEntryHandler(logbooks LogbookManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		result, err := logbooks.DeleteLogbookEntry(r.Context(), chi.URLParam(r, "entry_id"))
		if err != nil {
			respondServiceError(w, r, initTime, err, "delete logbook entry")
			return
		}

		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			logging.Info("Logbook entry removed", "by", claims.UserID(), "entry_id", result.Entry.ID, "request_id", requestID(r))
		}
		common.RespondSuccess(w, initTime, "Logbook entry deleted", result)
	}
}
