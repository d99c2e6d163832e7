package planner

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/logx"
)

// Service plans trips: resolves coordinates, routes, and schedules driving days.
type Service struct {
	geocoder    Geocoder
	router      Router
	scheduler   *Scheduler
	callTimeout time.Duration
	logger      logx.Logger
	outcomes    *prometheus.CounterVec
	now         func() time.Time
}

// NewService creates a planner Service. outcomes may be nil.
func NewService(
	g Geocoder,
	r Router,
	s *Scheduler,
	callTimeout time.Duration,
	logger logx.Logger,
	outcomes *prometheus.CounterVec,
) *Service {
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}
	return &Service{
		geocoder:    g,
		router:      r,
		scheduler:   s,
		callTimeout: callTimeout,
		logger:      logger,
		outcomes:    outcomes,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Plan never returns an error: failures are reported in Result.Failures.
func (s *Service) Plan(ctx context.Context, trip domain.Trip) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = failed(Failure{Reason: ReasonInternal, Err: fmt.Errorf("panic: %v", p)})
		}
		s.observe(trip, res)
	}()

	coords, failure := s.coordinates(ctx, trip)
	if failure != nil {
		return failed(*failure)
	}

	route, err := s.route(ctx, coords)
	if err != nil {
		return failed(Failure{Reason: ReasonRouteFailed, Err: err})
	}
	if len(route.Segments) == 0 {
		return failed(Failure{Reason: ReasonEmptyRoute})
	}

	miles := route.TotalDistanceMeters() / metersPerMile
	driving := route.TotalDuration()

	plans, err := s.scheduler.Schedule(s.now(), driving)
	if err != nil {
		return failed(Failure{Reason: ReasonScheduleFailed, Err: err})
	}

	stops := FuelStops(miles)
	lonLat := make([][2]float64, 0, len(coords))
	for _, c := range coords {
		lonLat = append(lonLat, c.LonLat())
	}

	return Result{
		Plans: plans,
		Summary: domain.TripSummary{
			TotalDistanceMiles: round1(miles),
			TotalDrivingHours:  round1(driving.Hours()),
			EstimatedDays:      len(plans),
			FuelStops:          stops,
			Coordinates:        lonLat,
		},
		FuelStops: stops,
	}
}

type stop struct {
	name    string
	address string
	preset  *domain.Coordinates
}

func (s *Service) coordinates(ctx context.Context, trip domain.Trip) ([]domain.Coordinates, *Failure) {
	stops := [...]stop{
		{name: "origin", address: trip.Origin, preset: trip.OriginCoords},
		{name: "pickup", address: trip.Pickup, preset: trip.PickupCoords},
		{name: "destination", address: trip.Destination, preset: trip.DropoffCoords},
	}

	out := make([]domain.Coordinates, 0, len(stops))
	for _, st := range stops {
		if st.preset != nil {
			out = append(out, *st.preset)
			continue
		}
		c, err := s.geocode(ctx, st.address)
		if err != nil {
			s.logger.Warn("geocoding failed",
				logx.String("location", st.name),
				logx.String("address", st.address),
				logx.Err(err),
			)
			return nil, &Failure{Reason: ReasonUnresolvedLocation, Location: st.name, Address: st.address, Err: err}
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Service) geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, fmt.Errorf("empty address")
	}
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.geocoder.Geocode(ctx, address)
}

func (s *Service) route(ctx context.Context, coords []domain.Coordinates) (domain.Route, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	return s.router.Route(ctx, coords)
}

func (s *Service) observe(trip domain.Trip, res Result) {
	outcome := "ok"
	if !res.OK() {
		outcome = string(res.Failures[0].Reason)
	}
	if s.outcomes != nil {
		s.outcomes.WithLabelValues(outcome).Inc()
	}

	if !res.OK() {
		s.logger.Error("trip planning failed",
			logx.String("event", "trip_plan_failed"),
			logx.Int64("trip_id", trip.ID),
			logx.String("reason", outcome),
			logx.Any("errors", res.Errors()),
		)
		return
	}
	s.logger.Info("trip planned",
		logx.String("event", "trip_planned"),
		logx.Int64("trip_id", trip.ID),
		logx.Int("days", len(res.Plans)),
		logx.Any("distance_miles", res.Summary.TotalDistanceMiles),
	)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
