package services

import (
	"strings"
	"time"

	"aeroportal/flightops/internal/flightops"
)

const dateLayout = "2006-01-02"

// parseDate reads a calendar date as UTC midnight.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, flightops.InvalidInput("date %q is not YYYY-MM-DD", value)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return flightops.InvalidInput("month %d is out of range", month)
	}
	if year < 1900 || year > 9999 {
		return flightops.InvalidInput("year %d is out of range", year)
	}
	return nil
}

func normalizeICAO(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
