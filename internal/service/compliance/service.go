package compliance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hos-trip-planner/internal/apperr"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/logx"
	"hos-trip-planner/internal/ports/logsheettx"
)

// maxSheetDays bounds a single log-sheet generation request.
const maxSheetDays = 31

// Service records duty logs and answers compliance questions about them.
type Service struct {
	evaluator  *hos.Evaluator
	drivers    DriverLookup
	trips      TripLookup
	logs       LogWriter
	sheets     logsheettx.Runner
	publisher  ViolationPublisher
	violations *prometheus.CounterVec
	logger     logx.Logger
	now        func() time.Time
}

// NewService wires a compliance Service. publisher and violations may be nil.
func NewService(
	evaluator *hos.Evaluator,
	drivers DriverLookup,
	trips TripLookup,
	logs LogWriter,
	sheets logsheettx.Runner,
	publisher ViolationPublisher,
	violations *prometheus.CounterVec,
	logger logx.Logger,
) *Service {
	return &Service{
		evaluator:  evaluator,
		drivers:    drivers,
		trips:      trips,
		logs:       logs,
		sheets:     sheets,
		publisher:  publisher,
		violations: violations,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Report evaluates a driver's logs for date.
func (s *Service) Report(ctx context.Context, driverID int64, date time.Time) (hos.Report, error) {
	if err := s.ensureDriver(ctx, driverID); err != nil {
		return hos.Report{}, err
	}
	return s.evaluator.Report(ctx, driverID, domain.DateOf(date))
}

// Record validates and stores an entry, then re-evaluates the entry's date.
func (s *Service) Record(ctx context.Context, e *domain.DutyLogEntry) (hos.Report, error) {
	if err := validateEntry(e); err != nil {
		return hos.Report{}, err
	}
	if err := s.ensureDriver(ctx, e.DriverID); err != nil {
		return hos.Report{}, err
	}
	if err := s.logs.Insert(ctx, e); err != nil {
		return hos.Report{}, fmt.Errorf("record duty log: %w", err)
	}

	report, err := s.evaluator.Report(ctx, e.DriverID, e.Date)
	if err != nil {
		return hos.Report{}, fmt.Errorf("evaluate %s: %w", e.Date.Format(time.DateOnly), err)
	}
	if !report.Compliant() {
		s.flag(ctx, report)
	}
	return report, nil
}

// GenerateLogSheets builds one sheet per logged date in [from, to] and stores
// them atomically.
func (s *Service) GenerateLogSheets(ctx context.Context, tripID, driverID int64, from, to time.Time) ([]domain.LogSheet, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if tripID <= 0 || from.IsZero() || to.Before(from) || to.Sub(from) >= maxSheetDays*24*time.Hour {
		return nil, apperr.ErrInvalid
	}
	if err := s.ensureDriver(ctx, driverID); err != nil {
		return nil, err
	}
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}
	if trip == nil {
		return nil, fmt.Errorf("trip %d: %w", tripID, apperr.ErrNotFound)
	}

	var sheets []domain.LogSheet
	err = s.sheets.WithTx(ctx, func(tx logsheettx.Repository) error {
		entries, err := tx.LogsForRange(ctx, driverID, from, to)
		if err != nil {
			return err
		}
		sheets = summarize(tripID, driverID, entries)
		for i := range sheets {
			if err := tx.UpsertLogSheet(ctx, &sheets[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("log sheets generated",
		logx.Int64("trip_id", tripID),
		logx.Int64("driver_id", driverID),
		logx.Int("sheets", len(sheets)),
	)
	return sheets, nil
}

func (s *Service) ensureDriver(ctx context.Context, driverID int64) error {
	if driverID <= 0 {
		return apperr.ErrInvalid
	}
	d, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return fmt.Errorf("get driver %d: %w", driverID, err)
	}
	if d == nil {
		return fmt.Errorf("driver %d: %w", driverID, apperr.ErrNotFound)
	}
	return nil
}

// flag publishes a violation event; failures are logged because the entry is already stored.
func (s *Service) flag(ctx context.Context, report hos.Report) {
	rules := s.evaluator.Rules()
	for _, v := range report.Violations {
		if s.violations != nil {
			s.violations.WithLabelValues(rules.RuleOf(v)).Inc()
		}
	}
	s.logger.Warn("hos violation",
		logx.String("event", "hos_violation"),
		logx.Int64("driver_id", report.DriverID),
		logx.String("date", report.Date.Format(time.DateOnly)),
		logx.Any("violations", report.Violations),
	)

	if s.publisher == nil {
		return
	}
	ev := ViolationEvent{
		DriverID:   report.DriverID,
		Date:       report.Date,
		Violations: report.Violations,
		DetectedAt: s.now(),
	}
	if err := s.publisher.PublishViolation(ctx, ev); err != nil {
		s.logger.Error("publish violation failed",
			logx.Int64("driver_id", report.DriverID),
			logx.Err(err),
		)
	}
}

func validateEntry(e *domain.DutyLogEntry) error {
	if e == nil || e.DriverID <= 0 {
		return apperr.ErrInvalid
	}
	if !e.Status.Valid() {
		return fmt.Errorf("status %q: %w", e.Status, apperr.ErrInvalid)
	}
	if e.DurationMinutes < 0 || e.DurationMinutes > 24*60 {
		return fmt.Errorf("duration %d: %w", e.DurationMinutes, apperr.ErrInvalid)
	}
	if e.StartTime.IsZero() {
		return fmt.Errorf("start time: %w", apperr.ErrInvalid)
	}
	e.StartTime = e.StartTime.UTC()
	if e.Date.IsZero() {
		e.Date = e.StartTime
	}
	e.Date = domain.DateOf(e.Date)
	return nil
}

// summarize groups entries by date, in date order.
func summarize(tripID, driverID int64, entries []domain.DutyLogEntry) []domain.LogSheet {
	var out []domain.LogSheet
	index := make(map[time.Time]int)
	for _, e := range entries {
		date := domain.DateOf(e.Date)
		i, ok := index[date]
		if !ok {
			i = len(out)
			index[date] = i
			out = append(out, domain.LogSheet{DriverID: driverID, TripID: tripID, Date: date})
		}
		sheet := &out[i]
		switch e.Status {
		case domain.StatusDriving:
			sheet.Driving += e.Duration()
		case domain.StatusOnDutyNotDriving:
			sheet.OnDuty += e.Duration()
		case domain.StatusOffDuty:
			sheet.OffDuty += e.Duration()
		case domain.StatusSleeperBerth:
			sheet.SleeperBerth += e.Duration()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
