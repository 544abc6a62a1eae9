package gorm

import (
	"time"

	"aeroportal/flightops/internal/flightops"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// Logbook is one aircraft's record for a calendar month.
type Logbook struct {
	ID            string    `gorm:"column:id;primaryKey"`
	AircraftID    string    `gorm:"column:aircraft_id;not null;uniqueIndex:idx_logbook_period"`
	Month         int       `gorm:"column:month;not null;uniqueIndex:idx_logbook_period"`
	Year          int       `gorm:"column:year;not null;uniqueIndex:idx_logbook_period"`
	PreviousHours float64   `gorm:"column:previous_hours;not null;default:0"`
	RevisionHours float64   `gorm:"column:revision_hours;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Logbook) TableName() string {
	return "logbooks"
}

func (l *Logbook) BeforeCreate(tx *gormlib.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Contains reports whether date falls inside the logbook's month.
func (l *Logbook) Contains(date time.Time) bool {
	return date.Year() == l.Year && int(date.Month()) == l.Month
}

// PeriodBounds returns [first day of month, first day of next month) in UTC.
func (l *Logbook) PeriodBounds() (time.Time, time.Time) {
	start := time.Date(l.Year, time.Month(l.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// LogbookEntry is one flight leg.
type LogbookEntry struct {
	ID              string    `gorm:"column:id;primaryKey"`
	LogbookID       string    `gorm:"column:logbook_id;not null;index"`
	AircraftID      string    `gorm:"column:aircraft_id;not null;index"`
	Seq             int64     `gorm:"column:seq;not null"`
	Date            time.Time `gorm:"column:date;type:date;not null"`
	FromAirport     string    `gorm:"column:from_airport;type:varchar(4);not null"`
	ToAirport       string    `gorm:"column:to_airport;type:varchar(4);not null"`
	TimeActivated   string    `gorm:"column:time_activated;type:varchar(8)"`
	TimeDeparture   string    `gorm:"column:time_departure;type:varchar(8)"`
	TimeArrival     string    `gorm:"column:time_arrival;type:varchar(8)"`
	TimeShutdown    string    `gorm:"column:time_shutdown;type:varchar(8)"`
	FlightTimeTotal float64   `gorm:"column:flight_time_total;not null"`
	FlightTimeDay   float64   `gorm:"column:flight_time_day;not null"`
	FlightTimeNight float64   `gorm:"column:flight_time_night;not null"`
	IFRHours        float64   `gorm:"column:ifr_hours;not null;default:0"`
	Landings        int       `gorm:"column:landings;not null;default:0"`
	FuelAdded       float64   `gorm:"column:fuel_added;not null;default:0"`
	FuelOnArrival   float64   `gorm:"column:fuel_on_arrival;not null;default:0"`
	PICName         string    `gorm:"column:pic_name;type:varchar(100)"`
	PICHours        float64   `gorm:"column:pic_hours;not null;default:0"`
	SICName         string    `gorm:"column:sic_name;type:varchar(100)"`
	SICHours        float64   `gorm:"column:sic_hours;not null;default:0"`
	DailyAllowance  float64   `gorm:"column:daily_allowance;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (LogbookEntry) TableName() string {
	return "logbook_entries"
}

func (e *LogbookEntry) BeforeCreate(tx *gormlib.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Leg projects the entry onto what the hour fold consumes.
func (e *LogbookEntry) Leg() flightops.LegRecord {
	return flightops.LegRecord{
		ID:              e.ID,
		Seq:             e.Seq,
		Date:            e.Date,
		FlightTimeTotal: e.FlightTimeTotal,
		PICName:         e.PICName,
		PICHours:        e.PICHours,
		SICName:         e.SICName,
		SICHours:        e.SICHours,
		DailyAllowance:  e.DailyAllowance,
	}
}

// AllowanceTransaction is the financial record derived from an entry's daily allowance.
type AllowanceTransaction struct {
	ID         string    `gorm:"column:id;primaryKey"`
	EntryID    string    `gorm:"column:entry_id;not null;index"`
	AircraftID string    `gorm:"column:aircraft_id;not null"`
	CrewName   string    `gorm:"column:crew_name;type:varchar(100)"`
	Amount     float64   `gorm:"column:amount;not null"`
	Date       time.Time `gorm:"column:date;type:date;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (AllowanceTransaction) TableName() string {
	return "allowance_transactions"
}

func (t *AllowanceTransaction) BeforeCreate(tx *gormlib.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
