package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal counts retry attempts made against the routing provider.
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewTripsPlannedTotal counts planning runs by outcome ("ok" or a failure reason).
func NewTripsPlannedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trips_planned_total",
		Help: "Total number of trip planning runs by outcome",
	}, []string{"outcome"})
}

// NewHOSViolationsTotal counts detected HOS violations by rule.
func NewHOSViolationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hos_violations_total",
		Help: "Total number of detected hours-of-service violations by rule",
	}, []string{"rule"})
}

// NewDutyLogsConsumedTotal counts duty-log messages handled by the worker by result.
func NewDutyLogsConsumedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "duty_logs_consumed_total",
		Help: "Total number of duty log messages consumed by result",
	}, []string{"result"})
}
