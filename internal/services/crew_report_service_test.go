package services

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"aeroportal/flightops/internal/flightops"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"github.com/xuri/excelize/v2"
)

// Mock FleetLister
type mockFleet struct {
	listFunc func(ctx context.Context) ([]gormModels.Aircraft, error)
}

func (m *mockFleet) List(ctx context.Context) ([]gormModels.Aircraft, error) {
	return m.listFunc(ctx)
}

// Mock PeriodLegSource
type mockLegSource struct {
	mu    sync.Mutex
	legs  map[string][]flightops.LegRecord
	err   error
	calls []string
}

func (m *mockLegSource) PeriodLegs(ctx context.Context, aircraftID string, year, month int) ([]flightops.LegRecord, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, aircraftID)
	if m.err != nil {
		return nil, false, m.err
	}
	legs, ok := m.legs[aircraftID]
	return legs, ok, nil
}

func threeAircraftFleet() *mockFleet {
	return &mockFleet{listFunc: func(ctx context.Context) ([]gormModels.Aircraft, error) {
		return []gormModels.Aircraft{
			{ID: "a1", Registration: "PR-ABC"},
			{ID: "a2", Registration: "PR-XYZ"},
			{ID: "a3", Registration: "PP-NEW"},
		}, nil
	}}
}

func crewLegs() *mockLegSource {
	return &mockLegSource{legs: map[string][]flightops.LegRecord{
		"a1": {
			{PICName: "Silva", PICHours: 1.5, SICName: "Costa", SICHours: 1.5},
			{PICName: "Silva", PICHours: 2.0},
		},
		"a2": {
			{PICName: "Costa", PICHours: 0.7},
		},
	}}
}

func TestGetCrewMonthlyReport(t *testing.T) {
	source := crewLegs()
	svc := NewCrewReportService(threeAircraftFleet(), source)

	report, err := svc.GetCrewMonthlyReport(context.Background(), 5, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(source.calls) != 3 {
		t.Errorf("Expected every aircraft queried, got %v", source.calls)
	}
	if len(report.Crew) != 2 {
		t.Fatalf("Expected 2 crew members, got %d", len(report.Crew))
	}

	costa, silva := report.Crew[0], report.Crew[1]
	if costa.CrewName != "Costa" || costa.TotalHours != 2.2 || costa.AircraftHours["PR-XYZ"] != 0.7 {
		t.Errorf("Unexpected row for Costa: %+v", costa)
	}
	if silva.TotalHours != 3.5 || len(silva.AircraftHours) != 1 {
		t.Errorf("Unexpected row for Silva: %+v", silva)
	}
}

func TestGetCrewMonthlyReport_EmptyAndErrors(t *testing.T) {
	empty := NewCrewReportService(threeAircraftFleet(), &mockLegSource{})
	report, err := empty.GetCrewMonthlyReport(context.Background(), 5, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.Crew == nil || len(report.Crew) != 0 {
		t.Errorf("Expected empty, non-nil crew list, got %#v", report.Crew)
	}

	if _, err := empty.GetCrewMonthlyReport(context.Background(), 0, 2024); !flightops.IsKind(err, flightops.KindInvalidInput) {
		t.Errorf("Expected INVALID_INPUT, got %v", err)
	}

	failing := NewCrewReportService(threeAircraftFleet(), &mockLegSource{err: errors.New("db down")})
	if _, err := failing.GetCrewMonthlyReport(context.Background(), 5, 2024); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestCrewMonthlyXLSX(t *testing.T) {
	export := NewReportExportService(NewCrewReportService(threeAircraftFleet(), crewLegs()))

	body, filename, err := export.CrewMonthlyXLSX(context.Background(), 5, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filename != "crew-hours-2024-05.xlsx" {
		t.Errorf("Unexpected filename %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("2024-05")
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d", len(rows))
	}
	header := rows[0]
	if len(header) != 4 || header[0] != "Crew" || header[1] != "PR-ABC" || header[2] != "PR-XYZ" || header[3] != "Total" {
		t.Errorf("Unexpected header %v", header)
	}
	if rows[1][0] != "Costa" || rows[1][3] != "2.2" {
		t.Errorf("Unexpected row %v", rows[1])
	}
}
