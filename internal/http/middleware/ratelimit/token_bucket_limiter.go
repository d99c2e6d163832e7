package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are dropped; 0 keeps them
	MaxBuckets int           // tracked keys; 0 is unbounded
}

func (c Config) normalized() Config {
	if c.Rate <= 0 {
		c.Rate = 1
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.MaxBuckets < 0 {
		c.MaxBuckets = 0
	}
	return c
}

// TokenBucketLimiter keeps one token bucket per key behind a single mutex.
type TokenBucketLimiter struct {
	cfg   Config
	clock Clock

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens  float64
	updated time.Time
}

// NewTokenBucketLimiter creates a limiter; a nil clock reads the wall clock.
func NewTokenBucketLimiter(clock Clock, cfg Config) *TokenBucketLimiter {
	if clock == nil {
		clock = RealClock{}
	}
	return &TokenBucketLimiter{
		cfg:     cfg.normalized(),
		clock:   clock,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes one token from key's bucket if one is available.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)
	b := l.bucketLocked(key, now)
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RetryAfter is how long key must wait for its next token.
func (l *TokenBucketLimiter) RetryAfter(key string) time.Duration {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		return 0
	}
	l.refill(b, now)
	missing := 1 - b.tokens
	if missing <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(missing / l.cfg.Rate * float64(time.Second)))
}

// Len returns the number of tracked keys.
func (l *TokenBucketLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *TokenBucketLimiter) bucketLocked(key string, now time.Time) *bucket {
	if b, ok := l.buckets[key]; ok {
		l.refill(b, now)
		return b
	}
	if l.cfg.MaxBuckets > 0 && len(l.buckets) >= l.cfg.MaxBuckets {
		l.evictStalestLocked()
	}
	b := &bucket{tokens: float64(l.cfg.Burst), updated: now}
	l.buckets[key] = b
	return b
}

func (l *TokenBucketLimiter) refill(b *bucket, now time.Time) {
	dt := now.Sub(b.updated)
	if dt <= 0 {
		return
	}
	b.tokens = math.Min(float64(l.cfg.Burst), b.tokens+dt.Seconds()*l.cfg.Rate)
	b.updated = now
}

// evictStalestLocked drops the key untouched for longest, so a full table
// never locks new clients out.
func (l *TokenBucketLimiter) evictStalestLocked() {
	var (
		stalest string
		at      time.Time
	)
	for k, b := range l.buckets {
		if at.IsZero() || b.updated.Before(at) {
			stalest, at = k, b.updated
		}
	}
	delete(l.buckets, stalest)
}

// sweepLocked drops idle buckets at most once per max(TTL/2, 1m).
func (l *TokenBucketLimiter) sweepLocked(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	every := max(l.cfg.TTL/2, time.Minute)
	if !l.lastSweep.IsZero() && now.Sub(l.lastSweep) < every {
		return
	}
	l.lastSweep = now

	for k, b := range l.buckets {
		if now.Sub(b.updated) > l.cfg.TTL {
			delete(l.buckets, k)
		}
	}
}
