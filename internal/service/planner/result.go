package planner

import (
	"fmt"

	"hos-trip-planner/internal/domain"
)

// Reason classifies why a trip could not be planned.
type Reason string

// List of failure reasons
const (
	ReasonUnresolvedLocation Reason = "unresolved_location"
	ReasonRouteFailed        Reason = "route_failed"
	ReasonEmptyRoute         Reason = "empty_route"
	ReasonScheduleFailed     Reason = "schedule_failed"
	ReasonInternal           Reason = "internal"
)

// Failure is a planning failure folded into the result.
type Failure struct {
	Reason   Reason
	Location string // origin, pickup or destination for ReasonUnresolvedLocation
	Address  string
	Err      error
}

// Message renders the failure for API clients.
func (f Failure) Message() string {
	switch f.Reason {
	case ReasonUnresolvedLocation:
		return fmt.Sprintf("could not determine coordinates for %s: %s", f.Location, f.Address)
	case ReasonRouteFailed:
		return fmt.Sprintf("unable to calculate route: %v", f.Err)
	case ReasonEmptyRoute:
		return "unable to calculate route - no routing data returned"
	case ReasonScheduleFailed:
		return fmt.Sprintf("unable to build schedule: %v", f.Err)
	default:
		return fmt.Sprintf("internal error: %v", f.Err)
	}
}

// Result carries either a schedule or the failures that prevented one.
type Result struct {
	Plans     []domain.DailyPlan
	Summary   domain.TripSummary
	FuelStops []domain.FuelStop
	Failures  []Failure
}

// OK reports whether planning succeeded.
func (r Result) OK() bool { return len(r.Failures) == 0 }

// Errors returns human readable failure messages.
func (r Result) Errors() []string {
	out := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		out = append(out, "Trip planning failed: "+f.Message())
	}
	return out
}

// PlanViolations collects the violation lists of plans that have any.
func (r Result) PlanViolations() [][]string {
	var out [][]string
	for _, p := range r.Plans {
		if len(p.Violations) > 0 {
			out = append(out, p.Violations)
		}
	}
	return out
}

func failed(f Failure) Result {
	return Result{Plans: []domain.DailyPlan{}, Failures: []Failure{f}}
}
