package flightops

import (
	"strings"
	"time"
)

// FlightTimes is a leg's block of flight time split into day and night, in decimal hours.
type FlightTimes struct {
	TotalHours float64 `json:"total_hours"`
	DayHours   float64 `json:"day_hours"`
	NightHours float64 `json:"night_hours"`
}

// ParseClock converts a local "HH:MM" or "HH:MM:SS" string to minutes after midnight.
// Seconds are truncated.
func ParseClock(value string) (int, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, InvalidInput("malformed clock time %q, expected HH:MM", value)
}

// SplitFlightTime partitions the interval between departure and arrival (local clock
// at the departure aerodrome) into day and night time. An arrival at or before the
// departure clock is taken to be on the following day.
func SplitFlightTime(departure, arrival string, from, to Aerodrome, date time.Time, policy DaylightPolicy) (FlightTimes, error) {
	if policy == nil {
		policy = CivilTwilightPolicy{}
	}

	dep, err := ParseClock(departure)
	if err != nil {
		return FlightTimes{}, err
	}
	arr, err := ParseClock(arrival)
	if err != nil {
		return FlightTimes{}, err
	}

	if arr <= dep {
		arr += minutesPerDay
	}
	duration := arr - dep
	if duration > minutesPerDay {
		return FlightTimes{}, InvalidInput("flight interval %s-%s exceeds 24 hours", departure, arrival)
	}

	today, err := policy.Window(date, from, to)
	if err != nil {
		return FlightTimes{}, err
	}
	nextDay, err := policy.Window(date.AddDate(0, 0, 1), from, to)
	if err != nil {
		return FlightTimes{}, err
	}

	dayMinutes := 0
	for m := dep; m < arr; m++ {
		window, clock := today, m
		if m >= minutesPerDay {
			window, clock = nextDay, m-minutesPerDay
		}
		if window.IsDay(clock) {
			dayMinutes++
		}
	}

	total := Round1(float64(duration) / 60)
	day := Round1(float64(dayMinutes) / 60)
	return FlightTimes{
		TotalHours: total,
		DayHours:   day,
		NightHours: Round1(total - day),
	}, nil
}

// flightTimeTolerance is the rounding slack allowed between total and day+night.
const flightTimeTolerance = 0.05

// ValidateFlightTimes checks the total == day + night invariant of a logbook entry.
// Values finer than a tenth of an hour are rejected rather than rounded.
func ValidateFlightTimes(ft FlightTimes) error {
	if ft.TotalHours < 0 || ft.DayHours < 0 || ft.NightHours < 0 {
		return InvalidInput("flight times cannot be negative")
	}
	if !OnTenths(ft.TotalHours) || !OnTenths(ft.DayHours) || !OnTenths(ft.NightHours) {
		return InvalidInput("flight times must be recorded in tenths of an hour")
	}
	diff := ft.TotalHours - (ft.DayHours + ft.NightHours)
	if diff > flightTimeTolerance+1e-9 || diff < -flightTimeTolerance-1e-9 {
		return InvalidInput("flight time total %.1f does not match day %.1f + night %.1f",
			ft.TotalHours, ft.DayHours, ft.NightHours)
	}
	return nil
}
