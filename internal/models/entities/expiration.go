package entities

import "time"

// CrewExpirationRow is a crew_expirations row as read by sqlx.
type CrewExpirationRow struct {
	ID             string    `db:"id"`
	CrewName       string    `db:"crew_name"`
	Item           string    `db:"item"`
	ExpirationDate time.Time `db:"expiration_date"`
}

// AircraftInspectionRow joins an inspection with the airframe hours it is measured against.
type AircraftInspectionRow struct {
	ID             string     `db:"id"`
	AircraftID     string     `db:"aircraft_id"`
	Registration   string     `db:"registration"`
	TotalHours     float64    `db:"total_hours"`
	Item           string     `db:"item"`
	ExpirationDate *time.Time `db:"expiration_date"`
	NextDueHours   *float64   `db:"next_due_hours"`
}
