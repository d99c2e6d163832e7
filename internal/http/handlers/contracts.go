package handlers

import (
	"context"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/service/planner"
)

type tripPlanner interface {
	Plan(ctx context.Context, trip domain.Trip) planner.Result
}

type tripStore interface {
	Create(ctx context.Context, t *domain.Trip) (int64, error)
}

type driverUsecase interface {
	Register(ctx context.Context, d *domain.Driver) (int64, error)
	Cycle(ctx context.Context, id int64) (domain.CycleStatus, error)
}

type complianceUsecase interface {
	Report(ctx context.Context, driverID int64, date time.Time) (hos.Report, error)
	Record(ctx context.Context, e *domain.DutyLogEntry) (hos.Report, error)
	GenerateLogSheets(ctx context.Context, tripID, driverID int64, from, to time.Time) ([]domain.LogSheet, error)
}
