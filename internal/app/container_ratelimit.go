package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/http/middleware/ratelimit"
	"hos-trip-planner/internal/logx"
)

// Probes and the metrics endpoint are never throttled.
var rateLimitExempt = []string{"/ping", "/healthcheck", "/metrics"}

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NewNopLimiter()
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Config  *config.Config
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

// newRateLimitMiddleware returns nil when rate limiting is disabled.
func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	if !in.Config.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(in.Logger, in.Counter, in.Limiter, rateLimitExempt...)
}
