package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"hos-trip-planner/internal/config"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/gateway/geocache"
	"hos-trip-planner/internal/gateway/ors"
	"hos-trip-planner/internal/hos"
	"hos-trip-planner/internal/http/handlers"
	"hos-trip-planner/internal/http/middleware/ratelimit"
	"hos-trip-planner/internal/http/pprofserver"
	"hos-trip-planner/internal/http/router"
	"hos-trip-planner/internal/logx"
	"hos-trip-planner/internal/repository"
	"hos-trip-planner/internal/service/compliance"
	"hos-trip-planner/internal/service/driver"
	"hos-trip-planner/internal/service/planner"
	"hos-trip-planner/internal/transport/kafka"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config.Load.
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateways(container); err != nil {
		return nil, fmt.Errorf("gateways: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		provideMetrics,
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
	}
	return provideAll(container, providerDB)
}

type gatewayIn struct {
	dig.In

	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newORSGateway(in gatewayIn) *ors.RetryingGateway {
	o := in.Config.ORS
	client := ors.NewClient(ors.Options{
		BaseURL: o.BaseURL,
		APIKey:  o.APIKey,
		Profile: o.Profile,
		Country: o.Country,
		Timeout: o.Timeout,
	}, &http.Client{Timeout: o.Timeout}, in.Logger)

	return ors.NewRetryingGateway(client, in.Logger, in.Retries, ors.RetryConfig{
		MaxAttempts: o.MaxAttempts,
		BaseDelay:   o.BaseDelay,
		MaxDelay:    o.MaxDelay,
	})
}

// newRedisClient returns nil when no address is configured.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func newGeocoder(cfg *config.Config, gw *ors.RetryingGateway, rdb *redis.Client, logger logx.Logger) planner.Geocoder {
	if rdb == nil {
		return gw
	}
	return geocache.New(gw, rdb, cfg.Redis.GeocodeTTL, logger)
}

func registerGateways(container *dig.Container) error {
	return provideAll(container,
		newORSGateway,
		newRedisClient,
		newGeocoder,
		func(gw *ors.RetryingGateway) planner.Router { return gw },
	)
}

// callBudget bounds a single planner call including every retry.
func callBudget(o config.ORS) time.Duration {
	attempts := o.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(attempts)*o.Timeout + time.Duration(attempts-1)*o.MaxDelay
}

type plannerIn struct {
	dig.In

	Config    *config.Config
	Logger    logx.Logger
	Geocoder  planner.Geocoder
	Router    planner.Router
	Scheduler *planner.Scheduler
	Outcomes  *prometheus.CounterVec `name:"trips_planned_total"`
}

func newPlanner(in plannerIn) *planner.Service {
	return planner.NewService(in.Geocoder, in.Router, in.Scheduler, callBudget(in.Config.ORS), in.Logger, in.Outcomes)
}

type complianceIn struct {
	dig.In

	Logger     logx.Logger
	Evaluator  *hos.Evaluator
	Drivers    *repository.DriverRepo
	Trips      *repository.TripRepo
	Logs       *repository.DutyLogRepo
	Sheets     *repository.LogSheetRepo
	Publisher  compliance.ViolationPublisher
	Violations *prometheus.CounterVec `name:"hos_violations_total"`
}

func newCompliance(in complianceIn) *compliance.Service {
	return compliance.NewService(
		in.Evaluator, in.Drivers, in.Trips, in.Logs, in.Sheets,
		in.Publisher, in.Violations, in.Logger,
	)
}

// newViolationProducer degrades to no publishing when the brokers are unreachable.
func newViolationProducer(cfg *config.Config, logger logx.Logger) *kafka.ViolationProducer {
	p, err := kafka.NewViolationProducer(logger, cfg.Kafka.Brokers, cfg.Kafka.ViolationTopic)
	if err != nil {
		logger.Warn("kafka producer unavailable, violations will not be published",
			logx.Err(err))
		return nil
	}
	return p
}

func newViolationPublisher(p *kafka.ViolationProducer) compliance.ViolationPublisher {
	if p == nil {
		return nil
	}
	return p
}

// provideRules is the single HOS rule set shared by the evaluator, the
// scheduler and the driver service.
func provideRules() (hos.Rules, error) {
	return checkedRules(hos.DefaultRules())
}

func checkedRules(r hos.Rules) (hos.Rules, error) {
	if err := r.Validate(); err != nil {
		return hos.Rules{}, err
	}
	return r, nil
}

type driverStore interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	Upsert(ctx context.Context, d *domain.Driver) (int64, error)
}

func newDriverService(repo driverStore, rules hos.Rules, cfg *config.Config) *driver.Service {
	return driver.NewService(repo, rules.CycleLimit, cfg.HOS.OperationTimeout)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewDriverRepo,
		repository.NewTripRepo,
		repository.NewDutyLogRepo,
		repository.NewLogSheetRepo,
		provideRules,
		func(logs *repository.DutyLogRepo, rules hos.Rules) *hos.Evaluator {
			return hos.NewEvaluator(logs, rules)
		},
		func(rules hos.Rules) *planner.Scheduler {
			return planner.NewScheduler(rules, planner.DefaultAllowances())
		},
		newPlanner,
		func(repo *repository.DriverRepo) driverStore { return repo },
		newDriverService,
		newViolationProducer,
		newViolationPublisher,
		newCompliance,
	)
}

func newHandlers(
	logger logx.Logger,
	p *planner.Service,
	trips *repository.TripRepo,
	drivers *driver.Service,
	c *compliance.Service,
) *handlers.Handlers {
	return handlers.New(logger,
		handlers.NewTripHandler(logger, p, trips, drivers, c),
		handlers.NewDriverHandler(logger, drivers, c),
	)
}

func newRouter(h *handlers.Handlers, cfg *config.Config, logger logx.Logger, rl *ratelimit.Middleware) http.Handler {
	return router.New(h, router.Options{
		Logger:         logger,
		RateLimit:      rl,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        router.DefaultTimeout,
	})
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      router.DefaultTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

// newPprofServer yields a nil server when profiling is disabled.
func newPprofServer(cfg *config.Config) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.NewServer(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	})}
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		newHandlers,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		newServer,
		newPprofServer,
	)
}
