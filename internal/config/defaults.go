package config

import "time"

const defaultPort = 8080

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
	StorageMemory   = "memory"
)

const (
	defaultOperationTimeout = 3 * time.Second
	defaultLogLevel         = "info"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultMongo = Mongo{
	URI:        "mongodb://localhost:27017",
	Database:   "partner_app",
	Collection: "partners",
}

var defaultKafka = Kafka{
	Brokers: []string{"localhost:9092"},
	GroupID: "service-partner-import",
	Topic:   "partners",
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       50,
	Burst:      100,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultPprof = Pprof{
	Enabled: false,
	Addr:    "127.0.0.1:6060",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultMongo returns the default MongoDB settings.
func DefaultMongo() Mongo {
	return defaultMongo
}

// DefaultKafka returns the default partner import stream settings.
func DefaultKafka() Kafka {
	k := defaultKafka
	k.Brokers = append([]string(nil), defaultKafka.Brokers...)
	return k
}

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultPprof returns the default pprof server settings.
func DefaultPprof() Pprof {
	return defaultPprof
}
