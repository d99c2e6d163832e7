package ratelimit

import "time"

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// RetryAdvisor is implemented by limiters that know when a rejected key
// may try again.
type RetryAdvisor interface {
	RetryAfter(key string) time.Duration
}

// Clock is the time source of a TokenBucketLimiter.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits every request; used when throttling is disabled.
type NopLimiter struct{}

func (NopLimiter) Allow(string) bool { return true }

func NewNopLimiter() Limiter { return NopLimiter{} }

var (
	_ Limiter      = NopLimiter{}
	_ Limiter      = (*TokenBucketLimiter)(nil)
	_ RetryAdvisor = (*TokenBucketLimiter)(nil)
)
