package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"hos-trip-planner/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter     `name:"gateway_retries_total"`
	TripsPlannedTotal      *prometheus.CounterVec `name:"trips_planned_total"`
	HOSViolationsTotal     *prometheus.CounterVec `name:"hos_violations_total"`
	DutyLogsConsumedTotal  *prometheus.CounterVec `name:"duty_logs_consumed_total"`
}

func provideMetrics() (metricsOut, error) {
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.GatewayRetriesTotal, err = register("gateway_retries_total", metrics.NewGatewayRetriesTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.TripsPlannedTotal, err = register("trips_planned_total", metrics.NewTripsPlannedTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.HOSViolationsTotal, err = register("hos_violations_total", metrics.NewHOSViolationsTotal()); err != nil {
		return metricsOut{}, err
	}
	if out.DutyLogsConsumedTotal, err = register("duty_logs_consumed_total", metrics.NewDutyLogsConsumedTotal()); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}

// register adds c to the default registry, reusing an already registered
// collector of the same type.
func register[T prometheus.Collector](name string, c T) (T, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
