package flightops

import (
	"fmt"
	"strings"
	"time"
)

// Severity is the closed set of alert labels shown on the maintenance dashboard.
type Severity string

const (
	SeverityExpired Severity = "Vencido"
	SeverityWarning Severity = "Atenção"
	SeverityOK      Severity = "OK"
)

var severityRank = map[Severity]int{
	SeverityOK:      0,
	SeverityWarning: 1,
	SeverityExpired: 2,
}

// ParseSeverity validates a label against the closed set. Matching ignores case and surrounding spaces.
func ParseSeverity(s string) (Severity, error) {
	s = strings.TrimSpace(s)
	for sev := range severityRank {
		if strings.EqualFold(string(sev), s) {
			return sev, nil
		}
	}
	return "", fmt.Errorf("unknown severity %q (want %s, %s or %s)", s, SeverityOK, SeverityWarning, SeverityExpired)
}

func (s Severity) Rank() int { return severityRank[s] }

// AtLeast reports whether s is as urgent as min or more.
func (s Severity) AtLeast(min Severity) bool { return s.Rank() >= min.Rank() }

func worse(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

type ExpirationThresholds struct {
	WarnDays  int
	WarnHours float64
}

func DefaultExpirationThresholds() ExpirationThresholds {
	return ExpirationThresholds{WarnDays: 30, WarnHours: 25}
}

// ExpirationRecord carries a calendar limit, an hour limit, or both.
type ExpirationRecord struct {
	ExpirationDate *time.Time
	NextDueHours   *float64
}

type ExpirationStatus struct {
	DaysRemaining  *int     `json:"days_remaining,omitempty"`
	HoursRemaining *float64 `json:"hours_remaining,omitempty"`
	Severity       Severity `json:"severity"`
}

// EvaluateExpiration computes what is left before a record expires. When both
// limits are present the more urgent severity wins.
func EvaluateExpiration(rec ExpirationRecord, today time.Time, totalHours float64, th ExpirationThresholds) (ExpirationStatus, error) {
	if rec.ExpirationDate == nil && rec.NextDueHours == nil {
		return ExpirationStatus{}, InvalidInput("expiration record has neither a date nor an hour limit")
	}

	status := ExpirationStatus{Severity: SeverityOK}

	if rec.ExpirationDate != nil {
		days := DaysBetween(today, *rec.ExpirationDate)
		status.DaysRemaining = &days
		status.Severity = worse(status.Severity, classify(float64(days), float64(th.WarnDays)))
	}

	if rec.NextDueHours != nil {
		hours := Round1(*rec.NextDueHours - totalHours)
		status.HoursRemaining = &hours
		status.Severity = worse(status.Severity, classify(hours, th.WarnHours))
	}

	return status, nil
}

func classify(remaining, warn float64) Severity {
	switch {
	case remaining < 0:
		return SeverityExpired
	case remaining <= warn:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// DaysBetween counts calendar days from one date to another, ignoring the time of day.
func DaysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
