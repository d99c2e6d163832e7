package domain

import "time"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// LonLat returns the point as [lon, lat] for routing APIs.
func (c Coordinates) LonLat() [2]float64 { return [2]float64{c.Lon, c.Lat} }

// Trip is a planned origin -> pickup -> destination run.
// Coordinates are optional; nil means "resolve from the address".
type Trip struct {
	ID                       int64
	Origin                   string
	Pickup                   string
	Destination              string
	OriginCoords             *Coordinates
	PickupCoords             *Coordinates
	DropoffCoords            *Coordinates
	EstimatedDurationMinutes int
}

// RouteSegment is one leg returned by the router.
type RouteSegment struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Route is the router answer for an ordered list of coordinates.
type Route struct {
	Segments []RouteSegment
}

// TotalDistanceMeters sums segment distances.
func (r Route) TotalDistanceMeters() float64 {
	var total float64
	for _, s := range r.Segments {
		total += s.DistanceMeters
	}
	return total
}

// TotalDuration sums segment durations, rounded to whole seconds.
func (r Route) TotalDuration() time.Duration {
	var seconds float64
	for _, s := range r.Segments {
		seconds += s.DurationSeconds
	}
	return time.Duration(seconds*float64(time.Second)).Round(time.Second)
}

// PlanStatusCompleted tags every emitted daily plan.
const PlanStatusCompleted = "completed"

// DailyPlan is one synthesized day of a trip schedule.
type DailyPlan struct {
	Date       time.Time
	Driving    time.Duration
	OnDuty     time.Duration
	OffDuty    time.Duration
	Status     string
	Violations []string
}

// DrivingHours returns driving time in hours.
func (p DailyPlan) DrivingHours() float64 { return p.Driving.Hours() }

// OnDutyHours returns on-duty time in hours.
func (p DailyPlan) OnDutyHours() float64 { return p.OnDuty.Hours() }

// OffDutyHours returns off-duty time in hours.
func (p DailyPlan) OffDutyHours() float64 { return p.OffDuty.Hours() }

// FuelStop is a positional refuelling point along the route.
type FuelStop struct {
	Sequence               int
	DistanceFromStartMiles float64
	Location               string
	FuelGallons            float64
}

// TripSummary aggregates the planning outcome.
type TripSummary struct {
	TotalDistanceMiles float64
	TotalDrivingHours  float64
	EstimatedDays      int
	FuelStops          []FuelStop
	Coordinates        [][2]float64
}
