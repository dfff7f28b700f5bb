package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: secret\n")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, StorageDriverJSON, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, ActivitySinkFile, cfg.Activity.Sink)
	assert.Equal(t, "app.log", cfg.Activity.File)
	assert.Equal(t, 100, cfg.Activity.TailLimit)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Minute, cfg.Redis.RoomsCacheTTL())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoadConfig_Full(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":9090"
  swagger_enabled: true
storage:
  driver: postgres
  database:
    host: localhost
    port: 5432
    user: hotel
    password: hotel
    name: hotel
    ssl_mode: disable
redis:
  addr: localhost:6379
  rooms_cache_ttl_seconds: 30
kafka:
  brokers: ["localhost:9092"]
  booking_events_topic: bookings
auth:
  jwt_secret: secret
  token_ttl_minutes: 15
activity:
  sink: both
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.True(t, cfg.HTTP.SwaggerEnabled)
	assert.Equal(t, "host=localhost port=5432 user=hotel password=hotel dbname=hotel sslmode=disable", cfg.Storage.Database.DSN())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.RoomsCacheTTL())
	assert.Equal(t, "bookings", cfg.Kafka.BookingEventsTopic)
	assert.Equal(t, "activity", cfg.Kafka.ActivityTopic)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt_secret: from-file\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATA_DIR", "/var/lib/hotel")
	t.Setenv("DATABASE_URL", "postgres://hotel@db/hotel")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "/var/lib/hotel", cfg.Storage.DataDir)
	assert.Equal(t, "postgres://hotel@db/hotel", cfg.Storage.Database.DSN())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing secret", "http:\n  address: \":8080\"\n"},
		{"unknown driver", "auth:\n  jwt_secret: s\nstorage:\n  driver: mongo\n"},
		{"kafka sink without brokers", "auth:\n  jwt_secret: s\nactivity:\n  sink: kafka\n"},
		{"unknown sink", "auth:\n  jwt_secret: s\nactivity:\n  sink: syslog\n"},
		{"broken yaml", "auth: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			_, err := LoadConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
