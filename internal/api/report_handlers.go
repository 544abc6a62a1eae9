package api

import (
	"context"
	"net/http"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/models/dtos"
	"aeroportal/flightops/internal/services"
)

type CrewReporter interface {
	GetCrewMonthlyReport(ctx context.Context, month, year int) (*dtos.CrewMonthlyReportResponse, error)
}

type CrewReportExporter interface {
	CrewMonthlyXLSX(ctx context.Context, month, year int) ([]byte, string, error)
}

type ExpirationLister interface {
	ListExpirations(ctx context.Context) (*dtos.ExpirationsResponse, error)
}

// CrewMonthlyReportHandler handles GET /api/v1/reports/crew-monthly?month=&year=[&format=xlsx]
func CrewMonthlyReportHandler(reports CrewReporter, exporter CrewReportExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		month, ok := intParam(w, initTime, "month", q.Get("month"))
		if !ok {
			return
		}
		year, ok := intParam(w, initTime, "year", q.Get("year"))
		if !ok {
			return
		}

		switch q.Get("format") {
		case "", "json":
			report, err := reports.GetCrewMonthlyReport(r.Context(), month, year)
			if err != nil {
				respondServiceError(w, r, initTime, err, "build crew report")
				return
			}
			common.RespondSuccess(w, initTime, "Crew monthly report", report)

		case "xlsx":
			body, filename, err := exporter.CrewMonthlyXLSX(r.Context(), month, year)
			if err != nil {
				respondServiceError(w, r, initTime, err, "export crew report")
				return
			}
			common.RespondAttachment(w, services.XLSXContentType, filename, body)

		default:
			common.RespondError(w, initTime, nil, "format must be json or xlsx", http.StatusBadRequest)
		}
	}
}

// ExpirationsHandler handles GET /api/v1/expirations
func ExpirationsHandler(lister ExpirationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		resp, err := lister.ListExpirations(r.Context())
		if err != nil {
			respondServiceError(w, r, initTime, err, "list expirations")
			return
		}

		common.RespondSuccess(w, initTime, "Expirations evaluated", resp)
	}
}
