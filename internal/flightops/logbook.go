package flightops

import (
	"math"
	"sort"
	"time"
)

// LegRecord is the part of a logbook entry the hour fold needs.
type LegRecord struct {
	ID              string
	Seq             int64
	Date            time.Time
	FlightTimeTotal float64
	PICName         string
	PICHours        float64
	SICName         string
	SICHours        float64
	DailyAllowance  float64
}

type CrewHours struct {
	CrewName   string  `json:"crew_name"`
	PICHours   float64 `json:"pic_hours"`
	SICHours   float64 `json:"sic_hours"`
	TotalHours float64 `json:"total_hours"`
}

type MonthlySummary struct {
	CrewHours      []CrewHours `json:"crew_hours"`
	TotalAllowance float64     `json:"total_allowance"`
}

// LogbookTotals is the result of folding a period's legs.
// CellHours is aligned with the sorted legs.
type LogbookTotals struct {
	CellHours    []float64
	CurrentHours float64
	Summary      MonthlySummary
}

// SortLegs orders legs by date, then by creation sequence within a day.
func SortLegs(legs []LegRecord) {
	sort.SliceStable(legs, func(i, j int) bool {
		di, dj := dateOnly(legs[i].Date), dateOnly(legs[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return legs[i].Seq < legs[j].Seq
	})
}

// FoldLogbook sorts legs in place and walks them from previousHours.
func FoldLogbook(previousHours float64, legs []LegRecord) LogbookTotals {
	SortLegs(legs)

	totals := LogbookTotals{
		CellHours:    make([]float64, len(legs)),
		CurrentHours: Round1(previousHours),
	}
	for i, leg := range legs {
		totals.CurrentHours = Round1(totals.CurrentHours + leg.FlightTimeTotal)
		totals.CellHours[i] = totals.CurrentHours
	}
	totals.Summary = Summarize(legs)
	return totals
}

// Summarize groups PIC and SIC hours by crew member and sums allowances.
func Summarize(legs []LegRecord) MonthlySummary {
	byName := make(map[string]*CrewHours)
	get := func(name string) *CrewHours {
		ch, ok := byName[name]
		if !ok {
			ch = &CrewHours{CrewName: name}
			byName[name] = ch
		}
		return ch
	}

	summary := MonthlySummary{CrewHours: []CrewHours{}}
	for _, leg := range legs {
		if leg.PICName != "" {
			get(leg.PICName).PICHours += leg.PICHours
		}
		if leg.SICName != "" {
			get(leg.SICName).SICHours += leg.SICHours
		}
		summary.TotalAllowance += leg.DailyAllowance
	}
	summary.TotalAllowance = roundMoney(summary.TotalAllowance)

	for _, ch := range byName {
		ch.PICHours = Round1(ch.PICHours)
		ch.SICHours = Round1(ch.SICHours)
		ch.TotalHours = Round1(ch.PICHours + ch.SICHours)
		summary.CrewHours = append(summary.CrewHours, *ch)
	}
	sort.Slice(summary.CrewHours, func(i, j int) bool {
		return summary.CrewHours[i].CrewName < summary.CrewHours[j].CrewName
	})
	return summary
}

// AdjustHours applies an increment (or, negative, a rollback) to a running total.
func AdjustHours(current, delta float64) float64 {
	return Round1(current + delta)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
