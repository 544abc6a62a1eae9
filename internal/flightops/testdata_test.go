package flightops

import "time"

var (
	sbsp = Aerodrome{ICAO: "SBSP", Name: "Congonhas", Latitude: -23.626111, Longitude: -46.656389, ElevationFt: 2631, Timezone: "America/Sao_Paulo"}
	sbrj = Aerodrome{ICAO: "SBRJ", Name: "Santos Dumont", Latitude: -22.910461, Longitude: -43.163133, ElevationFt: 11, Timezone: "America/Sao_Paulo"}
	ensb = Aerodrome{ICAO: "ENSB", Name: "Svalbard Longyear", Latitude: 78.246111, Longitude: 15.465556, ElevationFt: 88, Timezone: "Arctic/Longyearbyen"}
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixedWindowPolicy returns the same window for every date.
type fixedWindowPolicy struct {
	window DaylightWindow
}

func (p fixedWindowPolicy) Window(time.Time, Aerodrome, Aerodrome) (DaylightWindow, error) {
	return p.window, nil
}
