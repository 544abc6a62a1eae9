package dtos

// Dates are "YYYY-MM-DD"; clock times are local "HH:MM" or "HH:MM:SS".

type SplitFlightTimeRequest struct {
	Date          string `json:"date"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	FromAirport   string `json:"from_airport"`
	ToAirport     string `json:"to_airport"`
}

type FlightParametersRequest struct {
	DepartureAirport string  `json:"departure_airport"`
	ArrivalAirport   string  `json:"arrival_airport"`
	Aircraft         string  `json:"aircraft"`
	SpeedKts         float64 `json:"speed_kts"`
}

type WeightBalanceRequest struct {
	Aircraft   string  `json:"aircraft"`
	Payload    float64 `json:"payload"`
	FuelLiters float64 `json:"fuel_liters"`
	CrewCount  int     `json:"crew_count"`
}

// FlightPlanRequest assembles a full plan. DepartureTime is RFC 3339 and optional;
// FuelLiters defaults to the computed trip burn.
type FlightPlanRequest struct {
	Aircraft         string   `json:"aircraft"`
	DepartureAirport string   `json:"departure_airport"`
	ArrivalAirport   string   `json:"arrival_airport"`
	DepartureTime    string   `json:"departure_time,omitempty"`
	Altitude         int      `json:"altitude"`
	Payload          float64  `json:"payload"`
	SpeedKts         float64  `json:"speed_kts"`
	FuelLiters       *float64 `json:"fuel_liters,omitempty"`
	CrewCount        int      `json:"crew_count"`
}

// OpenLogbookRequest opens a period. Without revision_hours the value carries
// over from the previous logbook.
type OpenLogbookRequest struct {
	Month         int      `json:"month"`
	Year          int      `json:"year"`
	RevisionHours *float64 `json:"revision_hours,omitempty"`
}

// CreateLogbookEntryRequest records one leg. Flight times are computed from
// departure and arrival when both are given; otherwise the explicit values are used.
type CreateLogbookEntryRequest struct {
	AircraftID      string   `json:"aircraft_id"`
	LogbookID       string   `json:"logbook_id,omitempty"`
	Date            string   `json:"date"`
	FromAirport     string   `json:"from_airport"`
	ToAirport       string   `json:"to_airport"`
	TimeActivated   string   `json:"time_activated,omitempty"`
	TimeDeparture   string   `json:"time_departure,omitempty"`
	TimeArrival     string   `json:"time_arrival,omitempty"`
	TimeShutdown    string   `json:"time_shutdown,omitempty"`
	FlightTimeTotal *float64 `json:"flight_time_total,omitempty"`
	FlightTimeDay   *float64 `json:"flight_time_day,omitempty"`
	FlightTimeNight *float64 `json:"flight_time_night,omitempty"`
	IFRHours        float64  `json:"ifr_hours"`
	Landings        int      `json:"landings"`
	FuelAdded       float64  `json:"fuel_added"`
	FuelOnArrival   float64  `json:"fuel_on_arrival"`
	PICName         string   `json:"pic_name"`
	PICHours        float64  `json:"pic_hours"`
	SICName         string   `json:"sic_name"`
	SICHours        float64  `json:"sic_hours"`
	DailyAllowance  float64  `json:"daily_allowance"`
}
