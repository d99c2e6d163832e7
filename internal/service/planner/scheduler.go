package planner

import (
	"errors"
	"strings"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/hos"
)

// ErrNoProgress is returned when a fresh day has no driving budget left,
// which only happens with a broken rule set.
var ErrNoProgress = errors.New("scheduler: no driving time available on a fresh day")

// Allowances are the fixed non-driving on-duty blocks of a trip.
type Allowances struct {
	Pickup  time.Duration
	Dropoff time.Duration
}

// DefaultAllowances returns one hour for pickup and one for drop-off.
func DefaultAllowances() Allowances {
	return Allowances{Pickup: time.Hour, Dropoff: time.Hour}
}

// Scheduler splits a trip's driving time into HOS-bounded days.
type Scheduler struct {
	rules      hos.Rules
	allowances Allowances
}

// NewScheduler creates a Scheduler.
func NewScheduler(rules hos.Rules, allowances Allowances) *Scheduler {
	return &Scheduler{rules: rules, allowances: allowances}
}

// dayState is the accumulator for the day currently being filled.
type dayState struct {
	date    time.Time
	driving time.Duration
	onDuty  time.Duration
}

func (d dayState) available(rules hos.Rules) time.Duration {
	return min(rules.MaxDriving-d.driving, rules.MaxOnDutyWindow-d.onDuty)
}

// Schedule allocates total driving time greedily, one day at a time,
// starting on the calendar date of start.
func (s *Scheduler) Schedule(start time.Time, total time.Duration) ([]domain.DailyPlan, error) {
	var plans []domain.DailyPlan
	day := dayState{date: domain.DateOf(start), onDuty: s.allowances.Pickup}
	remaining := total
	freshDay := false

	for remaining > 0 {
		available := day.available(s.rules)
		if available <= 0 {
			if freshDay {
				return nil, ErrNoProgress
			}
			plans = append(plans, s.plan(day, s.rules.MinRest))
			day = dayState{date: day.date.AddDate(0, 0, 1)}
			freshDay = true
			continue
		}

		drive := min(remaining, available)
		day.driving += drive
		day.onDuty += drive
		remaining -= drive
		freshDay = false
	}

	day.onDuty += s.allowances.Dropoff
	plans = append(plans, s.plan(day, 24*time.Hour-day.onDuty))

	for i := range plans {
		plans[i].Violations = s.check(plans[i])
	}
	return plans, nil
}

func (s *Scheduler) plan(d dayState, offDuty time.Duration) domain.DailyPlan {
	return domain.DailyPlan{
		Date:    d.date,
		Driving: d.driving,
		OnDuty:  d.onDuty,
		OffDuty: offDuty,
		Status:  domain.PlanStatusCompleted,
	}
}

// check is a consistency pass; a correct schedule never trips it.
func (s *Scheduler) check(p domain.DailyPlan) []string {
	var out []string
	if p.Driving > s.rules.MaxDriving {
		out = append(out, strings.TrimSuffix(s.rules.DrivingViolation(), "."))
	}
	if p.OnDuty > s.rules.MaxOnDutyWindow {
		out = append(out, strings.TrimSuffix(s.rules.OnDutyViolation(), "."))
	}
	return out
}
