package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"service-partner/internal/logx"
)

// Config stores service settings.
type Config struct {
	Port             int
	Storage          string
	LogLevel         string
	OperationTimeout time.Duration
	DB               DB
	Mongo            Mongo
	Kafka            Kafka
	RateLimit        RateLimit
	Pprof            Pprof
}

// DB stores postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a postgres connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Mongo stores MongoDB connection settings.
type Mongo struct {
	URI        string
	Database   string
	Collection string
}

// Kafka stores partner import stream settings.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// RateLimit stores per-IP limiter settings.
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

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:             defaultPort,
		Storage:          StoragePostgres,
		LogLevel:         defaultLogLevel,
		OperationTimeout: defaultOperationTimeout,
		DB:               DefaultDB(),
		Mongo:            DefaultMongo(),
		Kafka:            DefaultKafka(),
		RateLimit:        DefaultRateLimit(),
		Pprof:            DefaultPprof(),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(envInt("PORT", &cfg.Port))
	envString("STORAGE_DRIVER", &cfg.Storage)
	envString("LOG_LEVEL", &cfg.LogLevel)
	collect(envDuration("OPERATION_TIMEOUT", &cfg.OperationTimeout))

	envString("POSTGRES_HOST", &cfg.DB.Host)
	envString("POSTGRES_PORT", &cfg.DB.Port)
	envString("POSTGRES_USER", &cfg.DB.User)
	envString("POSTGRES_PASSWORD", &cfg.DB.Pass)
	envString("POSTGRES_DB", &cfg.DB.Name)

	envString("MONGO_URI", &cfg.Mongo.URI)
	envString("MONGO_DB", &cfg.Mongo.Database)
	envString("MONGO_COLLECTION", &cfg.Mongo.Collection)

	envList("KAFKA_BROKERS", &cfg.Kafka.Brokers)
	envString("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	envString("KAFKA_PARTNERS_TOPIC", &cfg.Kafka.Topic)

	collect(envBool("RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled))
	collect(envFloat("RATE_LIMIT_RPS", &cfg.RateLimit.Rate))
	collect(envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst))
	collect(envDuration("RATE_LIMIT_TTL", &cfg.RateLimit.TTL))
	collect(envInt("RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets))

	collect(envBool("PPROF_ENABLED", &cfg.Pprof.Enabled))
	envString("PPROF_ADDR", &cfg.Pprof.Addr)
	envString("PPROF_USER", &cfg.Pprof.User)
	envString("PPROF_PASS", &cfg.Pprof.Pass)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseFlags(cfg *Config, args []string) error {
	fset := pflag.NewFlagSet("service-partner", pflag.ContinueOnError)
	fset.SetOutput(io.Discard)
	// test binaries and wrappers pass their own flags
	fset.ParseErrorsWhitelist.UnknownFlags = true

	fset.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fset.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage driver: postgres, mongo or memory")
	fset.DurationVar(&cfg.OperationTimeout, "operation-timeout", cfg.OperationTimeout, "per-operation store timeout")
	return fset.Parse(args)
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := strconv.Atoi(c.DB.Port); err != nil {
		return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.DB.Port, err)
	}
	switch c.Storage {
	case StoragePostgres, StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("invalid storage driver: %q", c.Storage)
	}
	if _, err := logx.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.OperationTimeout)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rps=%v burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	return nil
}

func envString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envList(key string, dst *[]string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
