package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hos-trip-planner/internal/http/handlers"
	obs "hos-trip-planner/internal/http/middleware"
	"hos-trip-planner/internal/http/middleware/ratelimit"
	"hos-trip-planner/internal/logx"
)

// DefaultTimeout bounds a request; planning waits on geocoding and routing.
const DefaultTimeout = 30 * time.Second

// Options configures the router middleware chain.
type Options struct {
	Logger         logx.Logger
	RateLimit      *ratelimit.Middleware // nil disables throttling
	AllowedOrigins []string
	Metrics        http.Handler // defaults to promhttp.Handler()
	Timeout        time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	if opts.Metrics == nil {
		opts.Metrics = promhttp.Handler()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(obs.Observability(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.RateLimit != nil {
		r.Use(opts.RateLimit.Handler())
	}

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", opts.Metrics)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.Timeout))

		r.Route("/trips", func(r chi.Router) {
			r.Post("/plan", h.Trips.Plan)
			r.Post("/{tripID}/logs", h.Trips.LogSheets)
			// kept for the web client, which reads the cycle under /trips
			r.Get("/drivers/{id}/cycle", h.Driver.Cycle)
		})
		r.Route("/drivers/{id}", func(r chi.Router) {
			r.Get("/cycle", h.Driver.Cycle)
			r.Get("/hos", h.Driver.HOS)
			r.Post("/logs", h.Driver.RecordLog)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
