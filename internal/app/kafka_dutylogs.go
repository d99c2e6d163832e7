package app

import (
	"context"
	"errors"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/transport/kafka"
)

type dutyLogRecorder interface {
	Record(ctx context.Context, e *domain.DutyLogEntry) (hos.Report, error)
}

// makeDutyLogHandler records consumed entries. Entries that can never be
// stored (bad data, unknown driver) are skipped instead of retried.
func makeDutyLogHandler(svc dutyLogRecorder) kafka.HandleFunc {
	return func(ctx context.Context, e domain.DutyLogEntry) error {
		_, err := svc.Record(ctx, &e)
		if err == nil {
			return nil
		}
		if errors.Is(err, apperr.ErrInvalid) || errors.Is(err, apperr.ErrNotFound) {
			return kafka.Permanent(err)
		}
		return err
	}
}
