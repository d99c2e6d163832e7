package logsheettx

import (
	"context"
	"time"

	"hos-trip-planner/internal/domain"
)

// Repository is the set of operations available inside a log-sheet transaction.
type Repository interface {
	LogsForRange(ctx context.Context, driverID int64, from, to time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error)
	UpsertLogSheet(ctx context.Context, s *domain.LogSheet) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
