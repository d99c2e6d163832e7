package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
)

// DriverRepo represents driver repository.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

// Get - returns driver by its ID, nil if absent.
func (r *DriverRepo) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	var d domain.Driver
	err := r.db.QueryRow(ctx,
		`SELECT id, name, license_number, current_cycle_minutes FROM drivers WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.CurrentCycleMinutes)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return &d, nil
}

// Upsert inserts a driver or updates the one with the same license number.
func (r *DriverRepo) Upsert(ctx context.Context, d *domain.Driver) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO drivers (name, license_number, current_cycle_minutes)
        VALUES ($1, $2, $3)
        ON CONFLICT (license_number) DO UPDATE
        SET name                  = EXCLUDED.name,
            current_cycle_minutes = EXCLUDED.current_cycle_minutes,
            updated_at            = now()
        RETURNING id
    `, d.Name, d.LicenseNumber, d.CurrentCycleMinutes).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("upsert driver %q: %w", d.LicenseNumber, err)
	}
	return id, nil
}
