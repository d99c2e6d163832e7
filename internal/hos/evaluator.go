package hos

import (
	"context"
	"fmt"
	"time"

	"hos-trip-planner/internal/domain"
)

// LogSource is the read-only log-history accessor the evaluator depends on.
// An empty statuses filter means "all statuses".
type LogSource interface {
	LogsForDate(ctx context.Context, driverID int64, date time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error)
	LogsForRange(ctx context.Context, driverID int64, from, to time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error)
}

// Report is the full compliance picture for a driver on a date.
type Report struct {
	DriverID          int64
	Date              time.Time
	Driving           time.Duration
	OnDuty            time.Duration
	HasSufficientRest bool
	RollingOnDuty     time.Duration
	CanRestart        bool
	Violations        []string
}

// Compliant reports whether no violation was found.
func (r Report) Compliant() bool { return len(r.Violations) == 0 }

// Evaluator computes HOS metrics from persisted duty logs.
type Evaluator struct {
	source LogSource
	rules  Rules
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(source LogSource, rules Rules) *Evaluator {
	return &Evaluator{source: source, rules: rules}
}

// Rules returns the rule set the evaluator checks against.
func (e *Evaluator) Rules() Rules { return e.rules }

// DailyDriving returns the driving time logged on date.
func (e *Evaluator) DailyDriving(ctx context.Context, driverID int64, date time.Time) (time.Duration, error) {
	entries, err := e.day(ctx, driverID, date, domain.StatusDriving)
	if err != nil {
		return 0, err
	}
	return DrivingTime(entries), nil
}

// DailyOnDuty returns the on-duty time logged on date.
func (e *Evaluator) DailyOnDuty(ctx context.Context, driverID int64, date time.Time) (time.Duration, error) {
	entries, err := e.day(ctx, driverID, date, domain.OnDutyStatuses...)
	if err != nil {
		return 0, err
	}
	return OnDutyTime(entries), nil
}

// HasSufficientRest reports whether date contains a qualifying rest period.
func (e *Evaluator) HasSufficientRest(ctx context.Context, driverID int64, date time.Time) (bool, error) {
	entries, err := e.day(ctx, driverID, date)
	if err != nil {
		return false, err
	}
	return HasSufficientRest(entries, e.rules), nil
}

// RollingOnDuty returns on-duty time over the rolling window ending at endDate.
func (e *Evaluator) RollingOnDuty(ctx context.Context, driverID int64, endDate time.Time) (time.Duration, error) {
	entries, err := e.window(ctx, driverID, endDate, domain.OnDutyStatuses...)
	if err != nil {
		return 0, err
	}
	return OnDutyTime(entries), nil
}

// CanRestart reports whether the rolling window holds a contiguous restart break.
func (e *Evaluator) CanRestart(ctx context.Context, driverID int64, endDate time.Time) (bool, error) {
	entries, err := e.window(ctx, driverID, endDate)
	if err != nil {
		return false, err
	}
	return CanRestart(entries, e.rules), nil
}

// Validate returns violation messages in a fixed order: driving, on-duty, rest, rolling cycle.
func (e *Evaluator) Validate(ctx context.Context, driverID int64, date time.Time) ([]string, error) {
	r, err := e.Report(ctx, driverID, date)
	if err != nil {
		return nil, err
	}
	return r.Violations, nil
}

// Report fetches the day and the rolling window once and evaluates every rule.
func (e *Evaluator) Report(ctx context.Context, driverID int64, date time.Time) (Report, error) {
	date = domain.DateOf(date)

	day, err := e.day(ctx, driverID, date)
	if err != nil {
		return Report{}, err
	}
	window, err := e.window(ctx, driverID, date)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		DriverID:          driverID,
		Date:              date,
		Driving:           DrivingTime(day),
		OnDuty:            OnDutyTime(day),
		HasSufficientRest: HasSufficientRest(day, e.rules),
		RollingOnDuty:     OnDutyTime(window),
		CanRestart:        CanRestart(window, e.rules),
	}
	r.Violations = violations(r, e.rules)
	return r, nil
}

func violations(r Report, rules Rules) []string {
	out := make([]string, 0, 4)
	if r.Driving > rules.MaxDriving {
		out = append(out, rules.DrivingViolation())
	}
	if r.OnDuty > rules.MaxOnDutyWindow {
		out = append(out, rules.OnDutyViolation())
	}
	if !r.HasSufficientRest {
		out = append(out, rules.RestViolation())
	}
	if r.RollingOnDuty > rules.CycleLimit {
		out = append(out, rules.CycleViolation())
	}
	return out
}

func (e *Evaluator) day(ctx context.Context, driverID int64, date time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	entries, err := e.source.LogsForDate(ctx, driverID, domain.DateOf(date), statuses...)
	if err != nil {
		return nil, fmt.Errorf("fetch logs for driver %d on %s: %w", driverID, date.Format(time.DateOnly), err)
	}
	return entries, nil
}

func (e *Evaluator) window(ctx context.Context, driverID int64, endDate time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	from, to := e.rules.CycleWindow(domain.DateOf(endDate))
	entries, err := e.source.LogsForRange(ctx, driverID, from, to, statuses...)
	if err != nil {
		return nil, fmt.Errorf("fetch logs for driver %d %s..%s: %w",
			driverID, from.Format(time.DateOnly), to.Format(time.DateOnly), err)
	}
	return entries, nil
}
