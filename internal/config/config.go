package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service and worker settings.
type Config struct {
	Port      int
	LogLevel  string
	DB        DB
	ORS       ORS
	Redis     Redis
	Kafka     Kafka
	HOS       HOS
	RateLimit RateLimit
	Pprof     Pprof
	CORS      CORS
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// ORS stores OpenRouteService client settings.
type ORS struct {
	BaseURL     string
	APIKey      string
	Profile     string
	Country     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Redis stores geocode cache settings. An empty Addr disables the cache.
type Redis struct {
	Addr       string
	Password   string
	DB         int
	GeocodeTTL time.Duration
}

// Kafka stores broker and topic settings.
type Kafka struct {
	Brokers        []string
	GroupID        string
	DutyLogTopic   string
	ViolationTopic string
}

// HOS stores service-level timeouts around HOS operations.
type HOS struct {
	OperationTimeout time.Duration
}

// RateLimit stores per-IP token bucket settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof stores debug server settings.
type Pprof struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// CORS stores allowed browser origins.
type CORS struct {
	AllowedOrigins []string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	r := &envReader{}
	cfg := &Config{
		Port:     r.int("PORT", defaultPort),
		LogLevel: strings.ToLower(r.str("LOG_LEVEL", defaultLogLevel)),
		DB: DB{
			Host: r.str("POSTGRES_HOST", defaultDB.Host),
			Port: r.str("POSTGRES_PORT", defaultDB.Port),
			User: r.str("POSTGRES_USER", defaultDB.User),
			Pass: r.str("POSTGRES_PASSWORD", defaultDB.Pass),
			Name: r.str("POSTGRES_DB", defaultDB.Name),
		},
		ORS: ORS{
			BaseURL:     r.str("ORS_BASE_URL", defaultORS.BaseURL),
			APIKey:      r.str("ORS_API_KEY", defaultORS.APIKey),
			Profile:     r.str("ORS_PROFILE", defaultORS.Profile),
			Country:     r.str("ORS_COUNTRY", defaultORS.Country),
			Timeout:     r.duration("ORS_TIMEOUT", defaultORS.Timeout),
			MaxAttempts: r.int("ORS_MAX_ATTEMPTS", defaultORS.MaxAttempts),
			BaseDelay:   r.duration("ORS_RETRY_BASE_DELAY", defaultORS.BaseDelay),
			MaxDelay:    r.duration("ORS_RETRY_MAX_DELAY", defaultORS.MaxDelay),
		},
		Redis: Redis{
			Addr:       r.str("REDIS_ADDR", defaultRedis.Addr),
			Password:   r.str("REDIS_PASSWORD", defaultRedis.Password),
			DB:         r.int("REDIS_DB", defaultRedis.DB),
			GeocodeTTL: r.duration("GEOCODE_CACHE_TTL", defaultRedis.GeocodeTTL),
		},
		Kafka: Kafka{
			Brokers:        r.list("KAFKA_BROKERS", defaultKafka.Brokers),
			GroupID:        r.str("KAFKA_GROUP_ID", defaultKafka.GroupID),
			DutyLogTopic:   r.str("DUTY_LOG_TOPIC", defaultKafka.DutyLogTopic),
			ViolationTopic: r.str("HOS_VIOLATION_TOPIC", defaultKafka.ViolationTopic),
		},
		HOS: HOS{
			OperationTimeout: r.duration("HOS_OPERATION_TIMEOUT", defaultHOS.OperationTimeout),
		},
		RateLimit: RateLimit{
			Enabled:    r.bool("RATE_LIMIT_ENABLED", defaultRateLimit.Enabled),
			Rate:       r.float("RATE_LIMIT_RATE", defaultRateLimit.Rate),
			Burst:      r.int("RATE_LIMIT_BURST", defaultRateLimit.Burst),
			TTL:        r.duration("RATE_LIMIT_TTL", defaultRateLimit.TTL),
			MaxBuckets: r.int("RATE_LIMIT_MAX_BUCKETS", defaultRateLimit.MaxBuckets),
		},
		Pprof: Pprof{
			Enabled: r.bool("PPROF_ENABLED", defaultPprof.Enabled),
			Addr:    r.str("PPROF_ADDR", defaultPprof.Addr),
			User:    r.str("PPROF_USER", defaultPprof.User),
			Pass:    r.str("PPROF_PASS", defaultPprof.Pass),
		},
		CORS: CORS{
			AllowedOrigins: r.list("CORS_ALLOWED_ORIGINS", defaultCORS.AllowedOrigins),
		},
	}
	if r.err != nil {
		return nil, r.err
	}

	if pflag.Lookup("port") == nil {
		pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	}
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL: %q", c.LogLevel)
	}
	if c.ORS.Timeout <= 0 {
		return fmt.Errorf("invalid ORS_TIMEOUT: %v", c.ORS.Timeout)
	}
	if c.ORS.MaxAttempts < 1 {
		return fmt.Errorf("invalid ORS_MAX_ATTEMPTS: %d", c.ORS.MaxAttempts)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rate=%v burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	return nil
}

// envReader collects the first parse error so Load can report it once.
type envReader struct {
	err error
}

func (r *envReader) fail(key, v string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *envReader) bool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) list(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
