package gorm

import (
	"time"

	"aeroportal/flightops/internal/constants"
	"aeroportal/flightops/internal/flightops"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// Aircraft holds the fleet reference data and the running hour total.
// TotalHours is written only by the logbook service, guarded by Version.
type Aircraft struct {
	ID                 string                   `gorm:"column:id;primaryKey" json:"id"`
	Registration       string                   `gorm:"column:registration;type:varchar(10);not null;uniqueIndex" json:"registration"`
	Model              string                   `gorm:"column:model;type:varchar(50);not null" json:"model"`
	TotalHours         float64                  `gorm:"column:total_hours;not null;default:0" json:"total_hours"`
	ConsumptionPerHour float64                  `gorm:"column:consumption_per_hour;not null;default:0" json:"consumption_per_hour"`
	EmptyWeightKg      float64                  `gorm:"column:empty_weight_kg;not null;default:0" json:"empty_weight_kg"`
	MaxTakeoffWeightKg float64                  `gorm:"column:max_takeoff_weight_kg;not null;default:0" json:"max_takeoff_weight_kg"`
	Status             constants.AircraftStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Version            int64                    `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt          time.Time                `gorm:"column:created_at" json:"-"`
	UpdatedAt          time.Time                `gorm:"column:updated_at" json:"-"`
}

func (Aircraft) TableName() string {
	return "aircraft"
}

func (a *Aircraft) BeforeCreate(tx *gormlib.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = constants.AircraftActive
	}
	return nil
}

func (a *Aircraft) Weights() flightops.AircraftWeights {
	return flightops.AircraftWeights{
		Model:              a.Model,
		EmptyWeightKg:      a.EmptyWeightKg,
		MaxTakeoffWeightKg: a.MaxTakeoffWeightKg,
	}
}
