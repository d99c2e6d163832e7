package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// DutyLogRepo represents duty log repository.
type DutyLogRepo struct{ db *pgxpool.Pool }

// NewDutyLogRepo creates a new DutyLogRepo.
func NewDutyLogRepo(db *pgxpool.Pool) *DutyLogRepo { return &DutyLogRepo{db: db} }

// LogsForDate returns entries logged on date, ordered by start time.
func (r *DutyLogRepo) LogsForDate(ctx context.Context, driverID int64, date time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	return logsForRange(ctx, r.db, driverID, date, date, statuses)
}

// LogsForRange returns entries with from <= date <= to, ordered by start time.
func (r *DutyLogRepo) LogsForRange(ctx context.Context, driverID int64, from, to time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	return logsForRange(ctx, r.db, driverID, from, to, statuses)
}

// Insert - stores a duty log entry and sets its ID.
func (r *DutyLogRepo) Insert(ctx context.Context, e *domain.DutyLogEntry) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO duty_logs (driver_id, date, status, start_time, duration_minutes)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, e.DriverID, domain.DateOf(e.Date), string(e.Status), e.StartTime, e.DurationMinutes).Scan(&e.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("driver %d: %w", e.DriverID, apperr.ErrNotFound)
		}
		return fmt.Errorf("insert duty log: %w", err)
	}
	return nil
}

func logsForRange(ctx context.Context, q querier, driverID int64, from, to time.Time, statuses []domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	sql := `
        SELECT id, driver_id, date, status, start_time, duration_minutes
        FROM duty_logs
        WHERE driver_id = $1 AND date BETWEEN $2 AND $3`
	args := []any{driverID, domain.DateOf(from), domain.DateOf(to)}
	if len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, string(s))
		}
		sql += ` AND status = ANY($4)`
		args = append(args, names)
	}
	sql += ` ORDER BY start_time, id`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query duty logs for driver %d: %w", driverID, err)
	}
	defer rows.Close()

	var out []domain.DutyLogEntry
	for rows.Next() {
		var (
			e      domain.DutyLogEntry
			status string
		)
		if err := rows.Scan(&e.ID, &e.DriverID, &e.Date, &status, &e.StartTime, &e.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan duty log: %w", err)
		}
		e.Status = domain.DutyStatus(status)
		e.Date = domain.DateOf(e.Date)
		e.StartTime = e.StartTime.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
