package ratelimit

import (
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hos-trip-planner/internal/logx"
)

// Middleware throttles API clients by remote IP.
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	limiter Limiter
	exempt  []string // path prefixes never throttled (probes, scrapes)
}

// New creates a new Middleware. Requests whose path starts with one of exempt
// bypass the limiter.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, exempt ...string) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	logger = logx.OrNop(logger)
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
		exempt:  exempt,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if m.limiter.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			if m.counter != nil {
				m.counter.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("ip", ip),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", m.retryAfter(ip))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"detail":"Too many requests."}`); err != nil {
				// клиент мог оборвать соединение
				m.logger.Debug("rate limit response write failed",
					logx.String("ip", ip),
					logx.Err(err),
				)
			}
		})
	}
}

// retryAfter renders whole seconds, at least one.
func (m *Middleware) retryAfter(ip string) string {
	secs := 1
	if ra, ok := m.limiter.(RetryAdvisor); ok {
		if d := ra.RetryAfter(ip); d > time.Second {
			secs = int(math.Ceil(d.Seconds()))
		}
	}
	return strconv.Itoa(secs)
}

func (m *Middleware) isExempt(path string) bool {
	for _, p := range m.exempt {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// clientIP expects chi's RealIP middleware to have already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
