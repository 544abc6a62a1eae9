package services

import (
	"context"
	"fmt"

	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/models/dtos"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"golang.org/x/sync/errgroup"
)

const reportFanOut = 4

// FleetLister lists every aircraft.
type FleetLister interface {
	List(ctx context.Context) ([]gormModels.Aircraft, error)
}

// PeriodLegSource loads one aircraft's legs for a period.
type PeriodLegSource interface {
	PeriodLegs(ctx context.Context, aircraftID string, year, month int) ([]flightops.LegRecord, bool, error)
}

type CrewReportService struct {
	fleet FleetLister
	legs  PeriodLegSource
}

func NewCrewReportService(fleet FleetLister, legs PeriodLegSource) *CrewReportService {
	return &CrewReportService{fleet: fleet, legs: legs}
}

// GetCrewMonthlyReport totals each crew member's hours per aircraft for a month.
// Aircraft without a logbook for the period are skipped.
func (s *CrewReportService) GetCrewMonthlyReport(ctx context.Context, month, year int) (*dtos.CrewMonthlyReportResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}

	fleet, err := s.fleet.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fleet: %w", err)
	}

	periods := make([]*flightops.AircraftPeriodLegs, len(fleet))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reportFanOut)

	for i := range fleet {
		ac := fleet[i]
		g.Go(func() error {
			legs, ok, err := s.legs.PeriodLegs(gctx, ac.ID, year, month)
			if err != nil {
				return fmt.Errorf("load legs for %s: %w", ac.Registration, err)
			}
			if ok {
				periods[i] = &flightops.AircraftPeriodLegs{Registration: ac.Registration, Legs: legs}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var input []flightops.AircraftPeriodLegs
	for _, p := range periods {
		if p != nil {
			input = append(input, *p)
		}
	}

	crew := flightops.BuildCrewMonthlyReport(input)
	if crew == nil {
		crew = []flightops.CrewMonthlyHours{}
	}
	return &dtos.CrewMonthlyReportResponse{Month: month, Year: year, Crew: crew}, nil
}
