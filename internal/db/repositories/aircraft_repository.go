package repositories

import (
	"context"
	"errors"

	"aeroportal/flightops/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

type AircraftRepository struct {
	db *gormlib.DB
}

func NewAircraftRepository(db *gormlib.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// WithTx returns a repository bound to an open transaction.
func (r *AircraftRepository) WithTx(tx *gormlib.DB) *AircraftRepository {
	return &AircraftRepository{db: tx}
}

func (r *AircraftRepository) FindByID(ctx context.Context, id string) (*gorm.Aircraft, error) {
	var aircraft gorm.Aircraft

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&aircraft).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &aircraft, nil
}

// FindByRegistration matches case-insensitively, e.g. "pr-abc" finds "PR-ABC".
func (r *AircraftRepository) FindByRegistration(ctx context.Context, registration string) (*gorm.Aircraft, error) {
	var aircraft gorm.Aircraft

	err := r.db.WithContext(ctx).
		Where("UPPER(registration) = UPPER(?)", registration).
		First(&aircraft).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &aircraft, nil
}

// List returns the whole fleet ordered by registration.
func (r *AircraftRepository) List(ctx context.Context) ([]gorm.Aircraft, error) {
	var fleet []gorm.Aircraft
	err := r.db.WithContext(ctx).Order("registration").Find(&fleet).Error
	return fleet, err
}

func (r *AircraftRepository) Create(ctx context.Context, aircraft *gorm.Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

// CompareAndSetHours writes total_hours only if the row still carries expectedVersion,
// bumping the version on success. It reports false when another writer got there first.
func (r *AircraftRepository) CompareAndSetHours(ctx context.Context, id string, expectedVersion int64, totalHours float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gorm.Aircraft{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"total_hours": totalHours,
			"version":     gormlib.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
