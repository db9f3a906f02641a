package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-partner/internal/config"
)

var configKeys = []string{
	"PORT", "STORAGE_DRIVER", "LOG_LEVEL", "OPERATION_TIMEOUT",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
	"MONGO_URI", "MONGO_DB", "MONGO_COLLECTION",
	"KAFKA_BROKERS", "KAFKA_GROUP_ID", "KAFKA_PARTNERS_TOPIC",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_TTL", "RATE_LIMIT_MAX_BUCKETS",
	"PPROF_ENABLED", "PPROF_ADDR", "PPROF_USER", "PPROF_PASS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
	withArgs(t, "cmd")
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = args
	t.Cleanup(func() { os.Args = old })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, config.StoragePostgres, cfg.Storage)
	require.Equal(t, 3*time.Second, cfg.OperationTimeout)
	require.Equal(t, "info", cfg.LogLevel)

	require.Equal(t, config.DefaultDB(), cfg.DB)
	require.Equal(t, config.DefaultMongo(), cfg.Mongo)
	require.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "partners", cfg.Kafka.Topic)
	require.False(t, cfg.RateLimit.Enabled)
	require.False(t, cfg.Pprof.Enabled)
	require.Equal(t, "127.0.0.1:6060", cfg.Pprof.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "mongo")
	t.Setenv("OPERATION_TIMEOUT", "750ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "service")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_DB", "partners_db")
	t.Setenv("MONGO_COLLECTION", "pdvs")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("KAFKA_GROUP_ID", "g")
	t.Setenv("KAFKA_PARTNERS_TOPIC", "partners.v1")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_TTL", "1m")
	t.Setenv("RATE_LIMIT_MAX_BUCKETS", "7")
	t.Setenv("PPROF_ENABLED", "1")
	t.Setenv("PPROF_USER", "admin")
	t.Setenv("PPROF_PASS", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, config.StorageMongo, cfg.Storage)
	require.Equal(t, 750*time.Millisecond, cfg.OperationTimeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, config.DB{Host: "db", Port: "15432", User: "u", Pass: "p", Name: "service"}, cfg.DB)
	require.Equal(t, config.Mongo{URI: "mongodb://mongo:27017", Database: "partners_db", Collection: "pdvs"}, cfg.Mongo)
	require.Equal(t, config.Kafka{Brokers: []string{"k1:9092", "k2:9092"}, GroupID: "g", Topic: "partners.v1"}, cfg.Kafka)
	require.Equal(t, config.RateLimit{Enabled: true, Rate: 2.5, Burst: 5, TTL: time.Minute, MaxBuckets: 7}, cfg.RateLimit)
	require.True(t, cfg.Pprof.Enabled)
	require.Equal(t, "admin", cfg.Pprof.User)
	require.Equal(t, "secret", cfg.Pprof.Pass)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	withArgs(t, "cmd", "--port=7070", "--storage", "memory", "--unknown=1")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, config.StorageMemory, cfg.Storage)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "70000"},
		{"PORT", "abc"},
		{"POSTGRES_PORT", "not-a-number"},
		{"STORAGE_DRIVER", "redis"},
		{"LOG_LEVEL", "loud"},
		{"OPERATION_TIMEOUT", "soon"},
		{"OPERATION_TIMEOUT", "0s"},
		{"RATE_LIMIT_ENABLED", "maybe"},
		{"RATE_LIMIT_RPS", "fast"},
		{"PPROF_ENABLED", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := config.Load()
			require.Error(t, err)
			require.Nil(t, cfg)
		})
	}
}

func TestLoad_RateLimitNeedsPositiveRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_FlagsParseError(t *testing.T) {
	clearEnv(t)
	withArgs(t, "cmd", "--port=not-a-number")

	cfg, err := config.Load()

	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "parse flags")
}

func TestDB_DSN(t *testing.T) {
	t.Parallel()

	dsn := config.DB{Host: "db", Port: "5432", User: "u", Pass: "p@ss", Name: "partners"}.DSN()
	require.Equal(t, "postgres://u:p%40ss@db:5432/partners?sslmode=disable", dsn)
}
