package gorm

import (
	"time"

	"aeroportal/flightops/internal/flightops"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// Aerodrome is an airport reference record with geographic coordinates.
type Aerodrome struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ICAO        string    `gorm:"column:icao;type:varchar(4);not null;uniqueIndex"`
	IATA        string    `gorm:"column:iata;type:varchar(3)"`
	Name        string    `gorm:"column:name;type:text;not null"`
	City        string    `gorm:"column:city;type:varchar(100)"`
	Country     string    `gorm:"column:country;type:varchar(100)"`
	ElevationFt int       `gorm:"column:elevation_ft;not null;default:0"`
	Latitude    float64   `gorm:"column:latitude;not null"`
	Longitude   float64   `gorm:"column:longitude;not null"`
	Timezone    string    `gorm:"column:timezone;type:varchar(50)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Aerodrome) TableName() string {
	return "aerodromes"
}

func (a *Aerodrome) BeforeCreate(tx *gormlib.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ToEngine converts the row into the engine's value type.
func (a *Aerodrome) ToEngine() flightops.Aerodrome {
	return flightops.Aerodrome{
		ICAO:        a.ICAO,
		IATA:        a.IATA,
		Name:        a.Name,
		City:        a.City,
		Country:     a.Country,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		ElevationFt: a.ElevationFt,
		Timezone:    a.Timezone,
	}
}
