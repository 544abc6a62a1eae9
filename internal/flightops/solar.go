package flightops

import (
	"math"
	"time"
)

// Solar zenith angle, in degrees, at the start of morning and the end of evening civil twilight.
const CivilTwilightZenith = 96.0

const minutesPerDay = 24 * 60

// DaylightWindow is the part of one local calendar day counted as day time.
// Start and End are minutes after local midnight, both inclusive.
type DaylightWindow struct {
	Start    int
	End      int
	AllDay   bool
	AllNight bool
}

// IsDay reports whether the minute starting at clock (minutes after local midnight) is day time.
func (w DaylightWindow) IsDay(clock int) bool {
	switch {
	case w.AllDay:
		return true
	case w.AllNight:
		return false
	}
	return clock >= w.Start && clock <= w.End
}

// DaylightPolicy decides the day/night boundary used to split a flight leg.
type DaylightPolicy interface {
	Window(date time.Time, from, to Aerodrome) (DaylightWindow, error)
}

// CivilTwilightPolicy evaluates civil twilight at the departure aerodrome.
type CivilTwilightPolicy struct{}

func (CivilTwilightPolicy) Window(date time.Time, from, _ Aerodrome) (DaylightWindow, error) {
	return SolarWindow(date, from, CivilTwilightZenith), nil
}

// SolarWindow computes the local-clock window during which the sun is above the
// given zenith angle at the aerodrome, using the NOAA fractional-year approximations
// for declination and the equation of time.
func SolarWindow(date time.Time, ad Aerodrome, zenithDeg float64) DaylightWindow {
	loc := ad.Location()
	y, m, d := date.Date()
	utcMidnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	localMidnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	daysInYear := 365.0
	if isLeap(y) {
		daysInYear = 366.0
	}
	gamma := 2 * math.Pi / daysInYear * float64(utcMidnight.YearDay()-1)

	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))

	decl := 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)

	lat := degToRad(ad.Latitude)
	cosHA := math.Cos(degToRad(zenithDeg))/(math.Cos(lat)*math.Cos(decl)) - math.Tan(lat)*math.Tan(decl)
	if cosHA > 1 {
		return DaylightWindow{AllNight: true}
	}
	if cosHA < -1 {
		return DaylightWindow{AllDay: true}
	}
	ha := radToDeg(math.Acos(cosHA))

	riseUTC := 720 - 4*(ad.Longitude+ha) - eqTime
	setUTC := 720 - 4*(ad.Longitude-ha) - eqTime

	rise := utcMidnight.Add(time.Duration(riseUTC * float64(time.Minute)))
	set := utcMidnight.Add(time.Duration(setUTC * float64(time.Minute)))

	return DaylightWindow{
		Start: int(math.Round(rise.Sub(localMidnight).Minutes())),
		End:   int(math.Round(set.Sub(localMidnight).Minutes())),
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

func radToDeg(rad float64) float64 { return rad * 180 / math.Pi }
