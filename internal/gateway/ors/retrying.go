package ors

import (
	"context"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/logx"
)

type gateway interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
	Route(ctx context.Context, coords []domain.Coordinates) (domain.Route, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes RetryingGateway behaviour. MaxAttempts below 1 means a single attempt.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient ORS failures with exponential backoff.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingGateway returns nil when next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

// Geocode delegates to the wrapped gateway with retries.
func (g *RetryingGateway) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	return retry(ctx, g, "Geocode", func() (domain.Coordinates, error) {
		return g.next.Geocode(ctx, address)
	})
}

// Route delegates to the wrapped gateway with retries.
func (g *RetryingGateway) Route(ctx context.Context, coords []domain.Coordinates) (domain.Route, error) {
	return retry(ctx, g, "Route", func() (domain.Route, error) {
		return g.next.Route(ctx, coords)
	})
}

func retry[T any](ctx context.Context, g *RetryingGateway, method string, call func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		v, err := call()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !IsRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("ors gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !g.sleep(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

// backoff doubles base per attempt, capped at max.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if max > 0 && d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
