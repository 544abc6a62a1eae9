package repositories

import (
	"context"
	"errors"

	"aeroportal/flightops/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// LogbookRepository covers logbooks, their entries and the allowance ledger.
type LogbookRepository struct {
	db *gormlib.DB
}

func NewLogbookRepository(db *gormlib.DB) *LogbookRepository {
	return &LogbookRepository{db: db}
}

func (r *LogbookRepository) WithTx(tx *gormlib.DB) *LogbookRepository {
	return &LogbookRepository{db: tx}
}

func (r *LogbookRepository) FindByID(ctx context.Context, id string) (*gorm.Logbook, error) {
	var logbook gorm.Logbook
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&logbook).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &logbook, nil
}

func (r *LogbookRepository) FindByPeriod(ctx context.Context, aircraftID string, year, month int) (*gorm.Logbook, error) {
	var logbook gorm.Logbook
	err := r.db.WithContext(ctx).
		Where("aircraft_id = ? AND year = ? AND month = ?", aircraftID, year, month).
		First(&logbook).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &logbook, nil
}

// FindPrevious returns the most recent logbook strictly before the given period.
func (r *LogbookRepository) FindPrevious(ctx context.Context, aircraftID string, year, month int) (*gorm.Logbook, error) {
	var logbook gorm.Logbook
	err := r.db.WithContext(ctx).
		Where("aircraft_id = ? AND (year < ? OR (year = ? AND month < ?))", aircraftID, year, year, month).
		Order("year DESC, month DESC").
		First(&logbook).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &logbook, nil
}

// ListAfter returns the logbooks strictly after the given period, oldest first.
func (r *LogbookRepository) ListAfter(ctx context.Context, aircraftID string, year, month int) ([]gorm.Logbook, error) {
	var logbooks []gorm.Logbook
	err := r.db.WithContext(ctx).
		Where("aircraft_id = ? AND (year > ? OR (year = ? AND month > ?))", aircraftID, year, year, month).
		Order("year ASC, month ASC").
		Find(&logbooks).Error
	return logbooks, err
}

func (r *LogbookRepository) SetPreviousHours(ctx context.Context, logbookID string, hours float64) error {
	return r.db.WithContext(ctx).
		Model(&gorm.Logbook{}).
		Where("id = ?", logbookID).
		Update("previous_hours", hours).Error
}

func (r *LogbookRepository) Create(ctx context.Context, logbook *gorm.Logbook) error {
	return r.db.WithContext(ctx).Create(logbook).Error
}

// ListEntries returns a logbook's entries ordered by date, then creation sequence.
func (r *LogbookRepository) ListEntries(ctx context.Context, logbookID string) ([]gorm.LogbookEntry, error) {
	var entries []gorm.LogbookEntry
	err := r.db.WithContext(ctx).
		Where("logbook_id = ?", logbookID).
		Order("date ASC, seq ASC").
		Find(&entries).Error
	return entries, err
}

func (r *LogbookRepository) FindEntryByID(ctx context.Context, id string) (*gorm.LogbookEntry, error) {
	var entry gorm.LogbookEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// NextSeq returns the creation sequence for a new entry in the logbook.
func (r *LogbookRepository) NextSeq(ctx context.Context, logbookID string) (int64, error) {
	var maxSeq int64
	err := r.db.WithContext(ctx).
		Model(&gorm.LogbookEntry{}).
		Where("logbook_id = ?", logbookID).
		Select("COALESCE(MAX(seq), 0)").
		Row().
		Scan(&maxSeq)
	if err != nil {
		return 0, err
	}
	return maxSeq + 1, nil
}

func (r *LogbookRepository) CreateEntry(ctx context.Context, entry *gorm.LogbookEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// DeleteEntry removes an entry and the ledger rows derived from it.
func (r *LogbookRepository) DeleteEntry(ctx context.Context, entryID string) error {
	if err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Delete(&gorm.AllowanceTransaction{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", entryID).
		Delete(&gorm.LogbookEntry{}).Error
}

func (r *LogbookRepository) CreateAllowance(ctx context.Context, txn *gorm.AllowanceTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *LogbookRepository) ListAllowances(ctx context.Context, entryID string) ([]gorm.AllowanceTransaction, error) {
	var rows []gorm.AllowanceTransaction
	err := r.db.WithContext(ctx).Where("entry_id = ?", entryID).Find(&rows).Error
	return rows, err
}
