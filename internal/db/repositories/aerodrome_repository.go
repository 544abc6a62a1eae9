package repositories

import (
	"context"
	"errors"

	"aeroportal/flightops/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AerodromeRepository handles aerodrome table operations
type AerodromeRepository struct {
	db *gormlib.DB
}

func NewAerodromeRepository(db *gormlib.DB) *AerodromeRepository {
	return &AerodromeRepository{db: db}
}

// FindByICAO finds an aerodrome by ICAO code (case-insensitive). Returns nil, nil when absent.
func (r *AerodromeRepository) FindByICAO(ctx context.Context, icao string) (*gorm.Aerodrome, error) {
	var aerodrome gorm.Aerodrome

	err := r.db.WithContext(ctx).
		Where("UPPER(icao) = UPPER(?)", icao).
		First(&aerodrome).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &aerodrome, nil
}

// Create inserts a single aerodrome.
func (r *AerodromeRepository) Create(ctx context.Context, aerodrome *gorm.Aerodrome) error {
	return r.db.WithContext(ctx).Create(aerodrome).Error
}

// ReplaceAll swaps the whole table for the given set in one transaction.
func (r *AerodromeRepository) ReplaceAll(ctx context.Context, aerodromes []gorm.Aerodrome) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Where("1 = 1").Delete(&gorm.Aerodrome{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(aerodromes, 100).Error
	})
}

func (r *AerodromeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Aerodrome{}).Count(&count).Error
	return count, err
}
