package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATASET_SOURCE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LISTEN_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATASET_WATCH", "")
	t.Setenv("VIEW_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "database", cfg.Dataset.Source)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Contains(t, cfg.Database.PostgresDSN(), "search_path=public")
	assert.NotContains(t, cfg.Database.ListenerDSN(), "search_path")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LISTEN_PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATASET_SOURCE", "csv")
	t.Setenv("DATASET_PATH", "/data/hr.csv")
	t.Setenv("DATASET_WATCH", "1")
	t.Setenv("VIEW_CACHE_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/hr")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Dataset.Watch)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "postgres://u:p@db/hr", cfg.Database.PostgresDSN())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port":     {"LISTEN_PORT": "eighty"},
		"driver":   {"DB_DRIVER": "oracle"},
		"source":   {"DATASET_SOURCE": "ftp"},
		"csv path": {"DATASET_SOURCE": "csv", "DATASET_PATH": ""},
		"db none":  {"DATASET_SOURCE": "database", "DB_DRIVER": "none"},
		"ttl":      {"VIEW_CACHE_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
