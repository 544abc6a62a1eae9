package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/models/dtos"
	"aeroportal/flightops/internal/models/entities"
)

// ExpirationReader lists the stored limits.
type ExpirationReader interface {
	ListCrewExpirations(ctx context.Context) ([]entities.CrewExpirationRow, error)
	ListAircraftInspections(ctx context.Context) ([]entities.AircraftInspectionRow, error)
}

// ExpirationService evaluates crew and aircraft limits against today's date and airframe hours.
type ExpirationService struct {
	repo       ExpirationReader
	thresholds flightops.ExpirationThresholds
	now        func() time.Time
}

func NewExpirationService(repo ExpirationReader, thresholds flightops.ExpirationThresholds) *ExpirationService {
	return &ExpirationService{repo: repo, thresholds: thresholds, now: time.Now}
}

// ListExpirations returns both lists ordered by urgency.
func (s *ExpirationService) ListExpirations(ctx context.Context) (*dtos.ExpirationsResponse, error) {
	today := s.now()

	crewRows, err := s.repo.ListCrewExpirations(ctx)
	if err != nil {
		return nil, err
	}
	inspectionRows, err := s.repo.ListAircraftInspections(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dtos.ExpirationsResponse{
		CrewExpirations:     make([]dtos.ExpirationItem, 0, len(crewRows)),
		AircraftInspections: make([]dtos.ExpirationItem, 0, len(inspectionRows)),
	}

	for _, row := range crewRows {
		expires := row.ExpirationDate
		item, err := s.evaluate(row.ID, row.CrewName, row.Item, flightops.ExpirationRecord{ExpirationDate: &expires}, today, 0)
		if err != nil {
			return nil, err
		}
		resp.CrewExpirations = append(resp.CrewExpirations, item)
	}

	for _, row := range inspectionRows {
		rec := flightops.ExpirationRecord{ExpirationDate: row.ExpirationDate, NextDueHours: row.NextDueHours}
		item, err := s.evaluate(row.ID, row.Registration, row.Item, rec, today, row.TotalHours)
		if err != nil {
			if flightops.IsKind(err, flightops.KindInvalidInput) {
				logging.Warn("Skipping inspection without limits", "inspection_id", row.ID, "aircraft", row.Registration)
				continue
			}
			return nil, err
		}
		resp.AircraftInspections = append(resp.AircraftInspections, item)
	}

	sortByUrgency(resp.CrewExpirations)
	sortByUrgency(resp.AircraftInspections)
	return resp, nil
}

// Alerts returns every tracked item at or above min severity, most urgent first.
func (s *ExpirationService) Alerts(ctx context.Context, min flightops.Severity) ([]dtos.ExpirationItem, error) {
	all, err := s.ListExpirations(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []dtos.ExpirationItem
	for _, list := range [][]dtos.ExpirationItem{all.CrewExpirations, all.AircraftInspections} {
		for _, item := range list {
			if item.Severity.AtLeast(min) {
				alerts = append(alerts, item)
			}
		}
	}
	sortByUrgency(alerts)
	return alerts, nil
}

func (s *ExpirationService) evaluate(id, subject, name string, rec flightops.ExpirationRecord, today time.Time, totalHours float64) (dtos.ExpirationItem, error) {
	status, err := flightops.EvaluateExpiration(rec, today, totalHours, s.thresholds)
	if err != nil {
		return dtos.ExpirationItem{}, fmt.Errorf("%s %s: %w", subject, name, err)
	}

	item := dtos.ExpirationItem{
		ID:             id,
		Subject:        subject,
		Item:           name,
		NextDueHours:   rec.NextDueHours,
		DaysRemaining:  status.DaysRemaining,
		HoursRemaining: status.HoursRemaining,
		Severity:       status.Severity,
	}
	if rec.ExpirationDate != nil {
		item.ExpirationDate = formatDate(*rec.ExpirationDate)
	}
	return item, nil
}

// sortByUrgency puts the worst severity first, then the fewest days and hours left.
func sortByUrgency(items []dtos.ExpirationItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if da, db := daysOrMax(a), daysOrMax(b); da != db {
			return da < db
		}
		if ha, hb := hoursOrMax(a), hoursOrMax(b); ha != hb {
			return ha < hb
		}
		return a.Subject < b.Subject
	})
}

func daysOrMax(item dtos.ExpirationItem) int {
	if item.DaysRemaining == nil {
		return math.MaxInt
	}
	return *item.DaysRemaining
}

func hoursOrMax(item dtos.ExpirationItem) float64 {
	if item.HoursRemaining == nil {
		return math.MaxFloat64
	}
	return *item.HoursRemaining
}
