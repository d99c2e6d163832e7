package hos_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
)

type memorySource struct {
	entries []domain.DutyLogEntry
	err     error
}

func (m *memorySource) LogsForDate(ctx context.Context, driverID int64, date time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	return m.LogsForRange(ctx, driverID, date, date, statuses...)
}

func (m *memorySource) LogsForRange(_ context.Context, driverID int64, from, to time.Time, statuses ...domain.DutyStatus) ([]domain.DutyLogEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.DutyLogEntry
	for _, e := range m.entries {
		if e.DriverID != driverID || e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, e.Status) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func contains(list []domain.DutyStatus, s domain.DutyStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var endDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func logAt(date time.Time, status domain.DutyStatus, hour, minutes int) domain.DutyLogEntry {
	return domain.DutyLogEntry{
		DriverID:        7,
		Date:            date,
		Status:          status,
		StartTime:       date.Add(time.Duration(hour) * time.Hour),
		DurationMinutes: minutes,
	}
}

func TestEvaluator_NoEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ev := hos.NewEvaluator(&memorySource{}, hos.DefaultRules())

	driving, err := ev.DailyDriving(ctx, 7, endDate)
	require.NoError(t, err)
	require.Zero(t, driving)

	onDuty, err := ev.DailyOnDuty(ctx, 7, endDate)
	require.NoError(t, err)
	require.Zero(t, onDuty)

	rolling, err := ev.RollingOnDuty(ctx, 7, endDate)
	require.NoError(t, err)
	require.Zero(t, rolling)

	rest, err := ev.HasSufficientRest(ctx, 7, endDate)
	require.NoError(t, err)
	require.False(t, rest)

	restart, err := ev.CanRestart(ctx, 7, endDate)
	require.NoError(t, err)
	require.False(t, restart)

	violations, err := ev.Validate(ctx, 7, endDate)
	require.NoError(t, err)
	require.Equal(t, []string{"No 10-hour consecutive rest."}, violations)
}

func TestEvaluator_DailyTotalsIgnoreOtherDates(t *testing.T) {
	t.Parallel()

	src := &memorySource{entries: []domain.DutyLogEntry{
		logAt(endDate, domain.StatusDriving, 6, 300),
		logAt(endDate, domain.StatusOnDutyNotDriving, 11, 60),
		logAt(endDate.AddDate(0, 0, -1), domain.StatusDriving, 6, 600),
	}}
	ev := hos.NewEvaluator(src, hos.DefaultRules())

	driving, err := ev.DailyDriving(context.Background(), 7, endDate)
	require.NoError(t, err)
	require.Equal(t, 5*time.Hour, driving)

	onDuty, err := ev.DailyOnDuty(context.Background(), 7, endDate)
	require.NoError(t, err)
	require.Equal(t, 6*time.Hour, onDuty)
}

func TestEvaluator_RollingWindowBoundary(t *testing.T) {
	t.Parallel()

	src := &memorySource{entries: []domain.DutyLogEntry{
		logAt(endDate.AddDate(0, 0, -8), domain.StatusDriving, 6, 600),
		logAt(endDate.AddDate(0, 0, -7), domain.StatusDriving, 6, 120),
		logAt(endDate, domain.StatusOnDutyNotDriving, 6, 60),
	}}
	ev := hos.NewEvaluator(src, hos.DefaultRules())

	rolling, err := ev.RollingOnDuty(context.Background(), 7, endDate)
	require.NoError(t, err)
	require.Equal(t, 3*time.Hour, rolling)
}

func TestEvaluator_ValidateOrder(t *testing.T) {
	t.Parallel()

	var entries []domain.DutyLogEntry
	for d := 1; d <= 6; d++ {
		entries = append(entries, logAt(endDate.AddDate(0, 0, -d), domain.StatusOnDutyNotDriving, 0, 10*60))
	}
	entries = append(entries,
		logAt(endDate, domain.StatusDriving, 0, 12*60),
		logAt(endDate, domain.StatusOnDutyNotDriving, 12, 3*60),
	)
	ev := hos.NewEvaluator(&memorySource{entries: entries}, hos.DefaultRules())

	violations, err := ev.Validate(context.Background(), 7, endDate)
	require.NoError(t, err)
	require.Equal(t, []string{
		"Exceeded 11-hour driving limit.",
		"Exceeded 14-hour on-duty limit.",
		"No 10-hour consecutive rest.",
		"Exceeded 70-hour/8-day cycle.",
	}, violations)
}

func TestEvaluator_Report_Compliant(t *testing.T) {
	t.Parallel()

	src := &memorySource{entries: []domain.DutyLogEntry{
		logAt(endDate, domain.StatusSleeperBerth, 0, 10*60),
		logAt(endDate, domain.StatusDriving, 10, 8*60),
		logAt(endDate, domain.StatusOnDutyNotDriving, 18, 60),
	}}
	ev := hos.NewEvaluator(src, hos.DefaultRules())

	r, err := ev.Report(context.Background(), 7, endDate.Add(15*time.Hour))
	require.NoError(t, err)
	require.True(t, r.Compliant())
	require.Empty(t, r.Violations)
	require.Equal(t, endDate, r.Date)
	require.Equal(t, 8*time.Hour, r.Driving)
	require.Equal(t, 9*time.Hour, r.OnDuty)
	require.True(t, r.HasSufficientRest)
	require.Equal(t, 9*time.Hour, r.RollingOnDuty)
	require.False(t, r.CanRestart)
}

func TestEvaluator_CanRestartAcrossDates(t *testing.T) {
	t.Parallel()

	prev := endDate.AddDate(0, 0, -1)
	src := &memorySource{entries: []domain.DutyLogEntry{
		logAt(prev, domain.StatusOffDuty, 0, 24*60),
		logAt(endDate, domain.StatusSleeperBerth, 0, 10*60),
	}}
	ev := hos.NewEvaluator(src, hos.DefaultRules())

	ok, err := ev.CanRestart(context.Background(), 7, endDate)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEvaluator_SourceErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	ev := hos.NewEvaluator(&memorySource{err: boom}, hos.DefaultRules())

	_, err := ev.Report(context.Background(), 7, endDate)
	require.ErrorIs(t, err, boom)

	_, err = ev.DailyDriving(context.Background(), 7, endDate)
	require.ErrorIs(t, err, boom)
}
