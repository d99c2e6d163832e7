package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"hos-trip-planner/internal/logx"
)

type stubLimiter struct {
	allow bool
	keys  *[]string
}

func (s stubLimiter) Allow(key string) bool {
	if s.keys != nil {
		*s.keys = append(*s.keys, key)
	}
	return s.allow
}

func okHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_Allows_RequestPassesToNext(t *testing.T) {
	t.Parallel()

	var keys []string
	nextCalled := 0
	h := New(logx.Nop(), nil, stubLimiter{allow: true, keys: &keys}).Handler()(okHandler(&nextCalled))

	r := httptest.NewRequest(http.MethodPost, "http://example/trips/plan", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, nextCalled)
	require.Equal(t, []string{"1.2.3.4"}, keys, "limiter keyed by host without port")
}

func TestMiddleware_Blocks_Returns429AndIncrementsCounter(t *testing.T) {
	t.Parallel()

	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ratelimit_denied_total",
		Help: "denied requests",
	})

	nextCalled := 0
	h := New(logx.Nop(), counter, stubLimiter{allow: false}).Handler()(okHandler(&nextCalled))

	r := httptest.NewRequest(http.MethodPost, "http://example/trips/plan", nil)
	r.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)

	require.Equal(t, 0, nextCalled)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"detail":"Too many requests."}`, w.Body.String())
	require.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMiddleware_ExemptPathsSkipLimiter(t *testing.T) {
	t.Parallel()

	var keys []string
	nextCalled := 0
	h := New(nil, nil, stubLimiter{allow: false, keys: &keys}, "/metrics", "/healthcheck").Handler()(okHandler(&nextCalled))

	for _, p := range []string{"/metrics", "/healthcheck"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		require.Equal(t, http.StatusOK, w.Code, p)
	}
	require.Equal(t, 2, nextCalled)
	require.Empty(t, keys)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/drivers/1/cycle", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestMiddleware_RetryAfterFromTokenBucket(t *testing.T) {
	t.Parallel()

	clk := newFakeClock()
	limiter := NewTokenBucketLimiter(clk, Config{Rate: 0.25, Burst: 1})

	nextCalled := 0
	h := New(logx.Nop(), nil, limiter).Handler()(okHandler(&nextCalled))

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "http://example/trips/plan", nil)
		r.RemoteAddr = "1.2.3.4:5678"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	require.Equal(t, http.StatusOK, send().Code)

	w := send()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "4", w.Header().Get("Retry-After"))

	clk.Advance(3500 * time.Millisecond)
	w = send()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Equal(t, 1, nextCalled)
}
