package config

import "time"

const (
	defaultPort     = 8080
	defaultLogLevel = "info"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "hos_planner",
}

var defaultORS = ORS{
	BaseURL:     "https://api.openrouteservice.org",
	Profile:     "driving-car",
	Timeout:     10 * time.Second,
	MaxAttempts: 1,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultRedis = Redis{
	GeocodeTTL: 24 * time.Hour,
}

var defaultKafka = Kafka{
	Brokers:        []string{"localhost:9092"},
	GroupID:        "hos-planner-worker",
	DutyLogTopic:   "duty-logs",
	ViolationTopic: "hos-violations",
}

var defaultHOS = HOS{
	OperationTimeout: 3 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       5,
	Burst:      10,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

var defaultCORS = CORS{
	AllowedOrigins: []string{"http://localhost:5173"},
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultORS returns the default OpenRouteService settings.
func DefaultORS() ORS {
	return defaultORS
}

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka {
	k := defaultKafka
	k.Brokers = append([]string(nil), defaultKafka.Brokers...)
	return k
}
