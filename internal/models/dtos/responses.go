package dtos

import "aeroportal/flightops/internal/flightops"

type FlightPlanResponse struct {
	Aircraft         string                  `json:"aircraft"`
	DepartureAirport string                  `json:"departure_airport"`
	ArrivalAirport   string                  `json:"arrival_airport"`
	DepartureTime    string                  `json:"departure_time,omitempty"`
	ETA              string                  `json:"eta,omitempty"`
	Altitude         int                     `json:"altitude"`
	Payload          float64                 `json:"payload"`
	SpeedKts         float64                 `json:"speed_kts"`
	DistanceNM       float64                 `json:"distance_nm"`
	ETEMinutes       int                     `json:"ete_minutes"`
	FuelBurnLiters   int                     `json:"fuel_burn_liters"`
	WeightBalance    flightops.WeightBalance `json:"weight_balance"`
}

type LogbookEntryView struct {
	ID              string   `json:"id"`
	Seq             int64    `json:"seq"`
	Date            string   `json:"date"`
	FromAirport     string   `json:"from_airport"`
	ToAirport       string   `json:"to_airport"`
	TimeActivated   string   `json:"time_activated,omitempty"`
	TimeDeparture   string   `json:"time_departure,omitempty"`
	TimeArrival     string   `json:"time_arrival,omitempty"`
	TimeShutdown    string   `json:"time_shutdown,omitempty"`
	FlightTimeTotal float64  `json:"flight_time_total"`
	FlightTimeDay   float64  `json:"flight_time_day"`
	FlightTimeNight float64  `json:"flight_time_night"`
	IFRHours        float64  `json:"ifr_hours"`
	Landings        int      `json:"landings"`
	FuelAdded       float64  `json:"fuel_added"`
	FuelOnArrival   float64  `json:"fuel_on_arrival"`
	PICName         string   `json:"pic_name,omitempty"`
	PICHours        float64  `json:"pic_hours"`
	SICName         string   `json:"sic_name,omitempty"`
	SICHours        float64  `json:"sic_hours"`
	DailyAllowance  float64  `json:"daily_allowance"`
	CellHours       *float64 `json:"cell_hours,omitempty"`
}

type LogbookResponse struct {
	ID             string                   `json:"id"`
	AircraftID     string                   `json:"aircraft_id"`
	Registration   string                   `json:"registration"`
	Month          int                      `json:"month"`
	Year           int                      `json:"year"`
	PreviousHours  float64                  `json:"previous_hours"`
	RevisionHours  float64                  `json:"revision_hours"`
	CurrentHours   float64                  `json:"current_hours"`
	Entries        []LogbookEntryView       `json:"entries"`
	MonthlySummary flightops.MonthlySummary `json:"monthly_summary"`
}

// LogbookEntryResult is returned after an entry mutation.
type LogbookEntryResult struct {
	Entry              LogbookEntryView `json:"entry"`
	LogbookID          string           `json:"logbook_id"`
	AircraftTotalHours float64          `json:"aircraft_total_hours"`
}

// ExpirationItem is one tracked limit with its evaluated status. Subject is the
// crew member's name or the aircraft registration.
type ExpirationItem struct {
	ID             string             `json:"id"`
	Subject        string             `json:"subject"`
	Item           string             `json:"item"`
	ExpirationDate string             `json:"expiration_date,omitempty"`
	NextDueHours   *float64           `json:"next_due_hours,omitempty"`
	DaysRemaining  *int               `json:"days_remaining,omitempty"`
	HoursRemaining *float64           `json:"hours_remaining,omitempty"`
	Severity       flightops.Severity `json:"severity"`
}

type ExpirationsResponse struct {
	CrewExpirations     []ExpirationItem `json:"crew_expirations"`
	AircraftInspections []ExpirationItem `json:"aircraft_inspections"`
}

type CrewMonthlyReportResponse struct {
	Month int                          `json:"month"`
	Year  int                          `json:"year"`
	Crew  []flightops.CrewMonthlyHours `json:"crew"`
}

type AerodromeSyncResponse struct {
	Imported int   `json:"imported"`
	Total    int64 `json:"total"`
}
