package flightops

import (
	"math"
	"time"
	_ "time/tzdata"
)

// Aerodrome is immutable reference data for one ICAO location.
type Aerodrome struct {
	ICAO        string  `json:"icao"`
	IATA        string  `json:"iata,omitempty"`
	Name        string  `json:"name"`
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ElevationFt int     `json:"elevation_ft"`
	Timezone    string  `json:"timezone,omitempty"`
}

// Location returns the aerodrome's local clock. Without a usable IANA zone the
// offset is derived from longitude, one hour per 15 degrees.
func (a Aerodrome) Location() *time.Location {
	if a.Timezone != "" {
		if loc, err := time.LoadLocation(a.Timezone); err == nil {
			return loc
		}
	}
	offsetHours := int(math.Round(a.Longitude / 15))
	return time.FixedZone(a.ICAO, offsetHours*3600)
}

// Round1 rounds to one decimal place, the resolution of every hour value in a logbook.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// OnTenths reports whether v is already a whole number of tenths of an hour.
func OnTenths(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-6
}
