package handlers_test

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/logx"
	"hos-trip-planner/internal/service/planner"
)

func testLogger() logx.Logger { return logx.Nop() }

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

type stubPlanner struct {
	planFn func(ctx context.Context, trip domain.Trip) planner.Result
}

func (s *stubPlanner) Plan(ctx context.Context, trip domain.Trip) planner.Result {
	return s.planFn(ctx, trip)
}

type stubTrips struct {
	createFn func(ctx context.Context, t *domain.Trip) (int64, error)
}

func (s *stubTrips) Create(ctx context.Context, t *domain.Trip) (int64, error) {
	return s.createFn(ctx, t)
}

type stubDrivers struct {
	registerFn func(ctx context.Context, d *domain.Driver) (int64, error)
	cycleFn    func(ctx context.Context, id int64) (domain.CycleStatus, error)
}

func (s *stubDrivers) Register(ctx context.Context, d *domain.Driver) (int64, error) {
	return s.registerFn(ctx, d)
}

func (s *stubDrivers) Cycle(ctx context.Context, id int64) (domain.CycleStatus, error) {
	return s.cycleFn(ctx, id)
}

type stubCompliance struct {
	reportFn func(ctx context.Context, driverID int64, date time.Time) (hos.Report, error)
	recordFn func(ctx context.Context, e *domain.DutyLogEntry) (hos.Report, error)
	sheetsFn func(ctx context.Context, tripID, driverID int64, from, to time.Time) ([]domain.LogSheet, error)
}

func (s *stubCompliance) Report(ctx context.Context, driverID int64, date time.Time) (hos.Report, error) {
	return s.reportFn(ctx, driverID, date)
}

func (s *stubCompliance) Record(ctx context.Context, e *domain.DutyLogEntry) (hos.Report, error) {
	return s.recordFn(ctx, e)
}

func (s *stubCompliance) GenerateLogSheets(ctx context.Context, tripID, driverID int64, from, to time.Time) ([]domain.LogSheet, error) {
	return s.sheetsFn(ctx, tripID, driverID, from, to)
}
