package flightops

import "math"

// Mean Earth radius in nautical miles.
const EarthRadiusNM = 3440.065

// FlightParameters are the derived planning values of a leg.
type FlightParameters struct {
	DistanceNM     float64 `json:"distance_nm"`
	ETEMinutes     int     `json:"ete_minutes"`
	FuelBurnLiters int     `json:"fuel_burn_liters"`
}

// GreatCircleNM returns the haversine distance between two coordinates.
func GreatCircleNM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusNM * c
}

// DistanceNM returns the great-circle distance between two aerodromes.
func DistanceNM(from, to Aerodrome) float64 {
	return GreatCircleNM(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// ComputeFlightParameters derives time en route and fuel burn for a distance flown at speedKts.
func ComputeFlightParameters(distanceNM, speedKts, consumptionPerHour float64) (FlightParameters, error) {
	if speedKts <= 0 {
		return FlightParameters{}, InvalidInput("speed_kts must be greater than zero, got %v", speedKts)
	}
	if consumptionPerHour < 0 {
		return FlightParameters{}, InvalidInput("consumption per hour cannot be negative")
	}

	ete := int(math.Round(distanceNM / speedKts * 60))
	fuel := int(math.Round(float64(ete) / 60 * consumptionPerHour))

	return FlightParameters{
		DistanceNM:     Round1(distanceNM),
		ETEMinutes:     ete,
		FuelBurnLiters: fuel,
	}, nil
}
