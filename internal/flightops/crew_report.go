package flightops

import "sort"

// AircraftPeriodLegs is one aircraft's legs for the reporting period.
type AircraftPeriodLegs struct {
	Registration string
	Legs         []LegRecord
}

type CrewMonthlyHours struct {
	CrewName      string             `json:"crew_name"`
	AircraftHours map[string]float64 `json:"aircraft_hours"`
	TotalHours    float64            `json:"total_hours"`
}

// BuildCrewMonthlyReport folds every crew member's PIC and SIC hours across the fleet.
func BuildCrewMonthlyReport(fleet []AircraftPeriodLegs) []CrewMonthlyHours {
	byName := make(map[string]*CrewMonthlyHours)
	add := func(name, registration string, hours float64) {
		if name == "" {
			return
		}
		row, ok := byName[name]
		if !ok {
			row = &CrewMonthlyHours{CrewName: name, AircraftHours: make(map[string]float64)}
			byName[name] = row
		}
		row.AircraftHours[registration] += hours
		row.TotalHours += hours
	}

	for _, ac := range fleet {
		for _, leg := range ac.Legs {
			add(leg.PICName, ac.Registration, leg.PICHours)
			add(leg.SICName, ac.Registration, leg.SICHours)
		}
	}

	report := make([]CrewMonthlyHours, 0, len(byName))
	for _, row := range byName {
		for reg, h := range row.AircraftHours {
			row.AircraftHours[reg] = Round1(h)
		}
		row.TotalHours = Round1(row.TotalHours)
		report = append(report, *row)
	}
	sort.Slice(report, func(i, j int) bool { return report[i].CrewName < report[j].CrewName })
	return report
}
