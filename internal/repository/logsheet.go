package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports/logsheettx"
)

// LogSheetRepo represents log sheet repository.
type LogSheetRepo struct {
	db *pgxpool.Pool
}

// NewLogSheetRepo creates a new LogSheetRepo.
func NewLogSheetRepo(db *pgxpool.Pool) *LogSheetRepo {
	return &LogSheetRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *LogSheetRepo) WithTx(ctx context.Context, fn func(tx logsheettx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// rollback on panic
	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// List returns the stored sheets of a trip ordered by date.
func (r *LogSheetRepo) List(ctx context.Context, tripID int64) ([]domain.LogSheet, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, driver_id, trip_id, date,
               total_driving_minutes, total_on_duty_minutes,
               total_off_duty_minutes, total_sleeper_berth_minutes
        FROM log_sheets
        WHERE trip_id = $1
        ORDER BY date, driver_id
    `, tripID)
	if err != nil {
		return nil, fmt.Errorf("list log sheets of trip %d: %w", tripID, err)
	}
	defer rows.Close()

	var out []domain.LogSheet
	for rows.Next() {
		var s domain.LogSheet
		var driving, onDuty, offDuty, sleeper int
		if err := rows.Scan(&s.ID, &s.DriverID, &s.TripID, &s.Date, &driving, &onDuty, &offDuty, &sleeper); err != nil {
			return nil, fmt.Errorf("scan log sheet: %w", err)
		}
		s.Date = domain.DateOf(s.Date)
		s.Driving = minutes(driving)
		s.OnDuty = minutes(onDuty)
		s.OffDuty = minutes(offDuty)
		s.SleeperBerth = minutes(sleeper)
		out = append(out, s)
	}
	return out, rows.Err()
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// LogsForRange reads duty logs inside the transaction.
func (r *TxRepo) LogsForRange(ctx context.Context, driverID int64, from, to time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	return logsForRange(ctx, r.tx, driverID, from, to, statuses)
}

// UpsertLogSheet - insert or refresh the sheet for (driver, trip, date).
func (r *TxRepo) UpsertLogSheet(ctx context.Context, s *domain.LogSheet) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO log_sheets (
            driver_id, trip_id, date,
            total_driving_minutes, total_on_duty_minutes,
            total_off_duty_minutes, total_sleeper_berth_minutes
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (driver_id, trip_id, date) DO UPDATE
        SET total_driving_minutes       = EXCLUDED.total_driving_minutes,
            total_on_duty_minutes       = EXCLUDED.total_on_duty_minutes,
            total_off_duty_minutes      = EXCLUDED.total_off_duty_minutes,
            total_sleeper_berth_minutes = EXCLUDED.total_sleeper_berth_minutes,
            updated_at                  = now()
        RETURNING id
    `, s.DriverID, s.TripID, domain.DateOf(s.Date),
		int(s.Driving/time.Minute), int(s.OnDuty/time.Minute),
		int(s.OffDuty/time.Minute), int(s.SleeperBerth/time.Minute),
	).Scan(&s.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("log sheet for trip %d: %w", s.TripID, apperr.ErrNotFound)
		}
		return fmt.Errorf("upsert log sheet: %w", err)
	}
	return nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
