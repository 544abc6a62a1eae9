package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// CrewExpiration is a dated crew qualification (medical, license, training).
type CrewExpiration struct {
	ID             string    `gorm:"column:id;primaryKey"`
	CrewName       string    `gorm:"column:crew_name;type:varchar(100);not null"`
	Item           string    `gorm:"column:item;type:varchar(100);not null"`
	ExpirationDate time.Time `gorm:"column:expiration_date;type:date;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (CrewExpiration) TableName() string {
	return "crew_expirations"
}

func (c *CrewExpiration) BeforeCreate(tx *gormlib.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// AircraftInspection is a maintenance item due by date, by airframe hours, or both.
type AircraftInspection struct {
	ID             string     `gorm:"column:id;primaryKey"`
	AircraftID     string     `gorm:"column:aircraft_id;not null;index"`
	Item           string     `gorm:"column:item;type:varchar(100);not null"`
	ExpirationDate *time.Time `gorm:"column:expiration_date;type:date"`
	NextDueHours   *float64   `gorm:"column:next_due_hours"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (AircraftInspection) TableName() string {
	return "aircraft_inspections"
}

func (a *AircraftInspection) BeforeCreate(tx *gormlib.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
