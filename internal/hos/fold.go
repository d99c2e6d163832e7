package hos

import (
	"sort"
	"time"

	"hos-trip-planner/internal/domain"
)

// SortByStart returns a copy of entries ordered by start time.
func SortByStart(entries []domain.DutyLogEntry) []domain.DutyLogEntry {
	out := make([]domain.DutyLogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// SumDuration totals the entries whose status matches keep.
func SumDuration(entries []domain.DutyLogEntry, keep func(domain.DutyStatus) bool) time.Duration {
	var total time.Duration
	for _, e := range entries {
		if keep(e.Status) {
			total += e.Duration()
		}
	}
	return total
}

// DrivingTime totals Driving entries.
func DrivingTime(entries []domain.DutyLogEntry) time.Duration {
	return SumDuration(entries, func(s domain.DutyStatus) bool { return s == domain.StatusDriving })
}

// OnDutyTime totals Driving and OnDutyNotDriving entries.
func OnDutyTime(entries []domain.DutyLogEntry) time.Duration {
	return SumDuration(entries, domain.DutyStatus.IsOnDuty)
}

// OffDutyRun is the accumulator carried across a start-ordered scan.
type OffDutyRun struct {
	Running time.Duration
	LastEnd time.Time
	seen    bool
}

// Step folds one entry into the run. When maxGap is non-negative, an
// off-duty entry starting more than maxGap after the previous entry's end
// starts a new run.
func (r OffDutyRun) Step(e domain.DutyLogEntry, maxGap time.Duration) OffDutyRun {
	next := r
	if e.Status.IsOffDuty() {
		if maxGap >= 0 && r.seen && e.StartTime.Sub(r.LastEnd) > maxGap {
			next.Running = 0
		}
		next.Running += e.Duration()
	} else {
		next.Running = 0
	}
	next.LastEnd = e.EndTime()
	next.seen = true
	return next
}

// noGapCheck disables the wall-clock contiguity check in Step.
const noGapCheck time.Duration = -1

// reachesOffDuty scans entries in start order and reports whether any run reaches target.
func reachesOffDuty(entries []domain.DutyLogEntry, target, maxGap time.Duration) bool {
	var run OffDutyRun
	for _, e := range SortByStart(entries) {
		run = run.Step(e, maxGap)
		if e.Status.IsOffDuty() && run.Running >= target {
			return true
		}
	}
	return false
}

// HasSufficientRest reports whether consecutive off-duty entries reach MinRest.
// Entries only need to be adjacent in the log, not in wall-clock time.
func HasSufficientRest(entries []domain.DutyLogEntry, rules Rules) bool {
	return reachesOffDuty(entries, rules.MinRest, noGapCheck)
}

// CanRestart reports whether wall-clock contiguous off-duty time reaches Restart.
func CanRestart(entries []domain.DutyLogEntry, rules Rules) bool {
	return reachesOffDuty(entries, rules.Restart, rules.RestartGapTolerance)
}
