package repositories

import (
	"context"
	"fmt"

	"aeroportal/flightops/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

const (
	listCrewExpirationsQuery = `
		SELECT id, crew_name, item, expiration_date
		FROM crew_expirations
		ORDER BY expiration_date, crew_name`

	listAircraftInspectionsQuery = `
		SELECT i.id, i.aircraft_id, a.registration, a.total_hours, i.item,
		       i.expiration_date, i.next_due_hours
		FROM aircraft_inspections i
		JOIN aircraft a ON a.id = i.aircraft_id
		ORDER BY a.registration, i.item`
)

// ExpirationRepository reads maintenance and crew limits with plain SQL.
type ExpirationRepository struct {
	db *sqlx.DB
}

func NewExpirationRepository(db *sqlx.DB) *ExpirationRepository {
	return &ExpirationRepository{db: db}
}

func (r *ExpirationRepository) ListCrewExpirations(ctx context.Context) ([]entities.CrewExpirationRow, error) {
	var rows []entities.CrewExpirationRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listCrewExpirationsQuery)); err != nil {
		return nil, fmt.Errorf("list crew expirations: %w", err)
	}
	return rows, nil
}

func (r *ExpirationRepository) ListAircraftInspections(ctx context.Context) ([]entities.AircraftInspectionRow, error) {
	var rows []entities.AircraftInspectionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listAircraftInspectionsQuery)); err != nil {
		return nil, fmt.Errorf("list aircraft inspections: %w", err)
	}
	return rows, nil
}
