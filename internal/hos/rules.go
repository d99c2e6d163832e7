// Package hos implements the Hours-of-Service rule set and the evaluator
// that checks logged duty time against it.
package hos

import (
	"errors"
	"fmt"
	"time"
)

// Rules is the HOS rule set shared by the evaluator and the trip scheduler.
type Rules struct {
	MaxDriving          time.Duration // per day
	MaxOnDutyWindow     time.Duration // per day
	MinRest             time.Duration // consecutive off-duty
	CycleLimit          time.Duration // rolling on-duty cap
	CycleDays           int           // rolling window length, calendar days
	Restart             time.Duration // off-duty needed to reset the cycle
	RestartGapTolerance time.Duration // max wall-clock gap joining off-duty blocks
}

// DefaultRules returns the US property-carrying 11/14/10/70/34 rule set.
func DefaultRules() Rules {
	return Rules{
		MaxDriving:          11 * time.Hour,
		MaxOnDutyWindow:     14 * time.Hour,
		MinRest:             10 * time.Hour,
		CycleLimit:          70 * time.Hour,
		CycleDays:           8,
		Restart:             34 * time.Hour,
		RestartGapTolerance: time.Minute,
	}
}

// Validate rejects rule sets that would make the engine meaningless.
func (r Rules) Validate() error {
	if r.MaxDriving <= 0 || r.MaxOnDutyWindow <= 0 {
		return errors.New("hos rules: daily limits must be positive")
	}
	if r.MinRest <= 0 || r.Restart <= 0 || r.CycleLimit <= 0 {
		return errors.New("hos rules: rest and cycle limits must be positive")
	}
	if r.CycleDays <= 0 {
		return fmt.Errorf("hos rules: invalid cycle length %d", r.CycleDays)
	}
	if r.RestartGapTolerance < 0 {
		return errors.New("hos rules: negative restart gap tolerance")
	}
	return nil
}

// CycleWindow returns the inclusive [from, to] dates of the rolling window ending at end.
func (r Rules) CycleWindow(end time.Time) (from, to time.Time) {
	return end.AddDate(0, 0, -(r.CycleDays - 1)), end
}

// DrivingViolation is the message for exceeding the daily driving limit.
func (r Rules) DrivingViolation() string {
	return fmt.Sprintf("Exceeded %d-hour driving limit.", wholeHours(r.MaxDriving))
}

// OnDutyViolation is the message for exceeding the daily on-duty window.
func (r Rules) OnDutyViolation() string {
	return fmt.Sprintf("Exceeded %d-hour on-duty limit.", wholeHours(r.MaxOnDutyWindow))
}

// RestViolation is the message for a day without sufficient rest.
func (r Rules) RestViolation() string {
	return fmt.Sprintf("No %d-hour consecutive rest.", wholeHours(r.MinRest))
}

// CycleViolation is the message for exceeding the rolling cycle cap.
func (r Rules) CycleViolation() string {
	return fmt.Sprintf("Exceeded %d-hour/%d-day cycle.", wholeHours(r.CycleLimit), r.CycleDays)
}

func wholeHours(d time.Duration) int {
	return int(d / time.Hour)
}

// RuleOf maps a violation message produced by r back to a short rule key.
func (r Rules) RuleOf(violation string) string {
	switch violation {
	case r.DrivingViolation():
		return "driving"
	case r.OnDutyViolation():
		return "on_duty"
	case r.RestViolation():
		return "rest"
	case r.CycleViolation():
		return "cycle"
	default:
		return "unknown"
	}
}
