package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"aeroportal/flightops/internal/models/dtos"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportExportService renders reports as spreadsheets.
type ReportExportService struct {
	reports *CrewReportService
}

func NewReportExportService(reports *CrewReportService) *ReportExportService {
	return &ReportExportService{reports: reports}
}

// CrewMonthlyXLSX returns the crew monthly report as an XLSX workbook: one row per
// crew member, one column per aircraft, and a total column.
func (s *ReportExportService) CrewMonthlyXLSX(ctx context.Context, month, year int) ([]byte, string, error) {
	report, err := s.reports.GetCrewMonthlyReport(ctx, month, year)
	if err != nil {
		return nil, "", err
	}

	body, err := renderCrewMonthly(report)
	if err != nil {
		return nil, "", err
	}
	return body, fmt.Sprintf("crew-hours-%04d-%02d.xlsx", year, month), nil
}

func renderCrewMonthly(report *dtos.CrewMonthlyReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := fmt.Sprintf("%04d-%02d", report.Year, report.Month)
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	regSet := map[string]struct{}{}
	for _, c := range report.Crew {
		for reg := range c.AircraftHours {
			regSet[reg] = struct{}{}
		}
	}
	registrations := make([]string, 0, len(regSet))
	for reg := range regSet {
		registrations = append(registrations, reg)
	}
	sort.Strings(registrations)

	header := []interface{}{"Crew"}
	for _, reg := range registrations {
		header = append(header, reg)
	}
	header = append(header, "Total")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, c := range report.Crew {
		row := []interface{}{c.CrewName}
		for _, reg := range registrations {
			row = append(row, c.AircraftHours[reg])
		}
		row = append(row, c.TotalHours)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
