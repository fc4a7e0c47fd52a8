package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "BROKER", "FLUSH_INTERVAL", "KAFKA_BROKERS", "INSTANCE_ID", "SESSION_IDLE", "SWEEP_INTERVAL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "sqlite", cfg.StoreDriver)
	require.Equal(t, "memory", cfg.Broker)
	require.Equal(t, 2*time.Second, cfg.FlushInterval)
	require.Equal(t, 30*time.Minute, cfg.SessionIdle)
	require.Equal(t, time.Minute, cfg.SweepInterval)
	require.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	require.NotEmpty(t, cfg.InstanceID)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("BROKER", "KAFKA")
	t.Setenv("FLUSH_INTERVAL", "500ms")
	t.Setenv("SESSION_IDLE", "5m")
	t.Setenv("KAFKA_BROKERS", ` "k1:9092", k2:9092 ,`)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PRETTY_LOG", "true")
	t.Setenv("INSTANCE_ID", "node-a")

	cfg := Load()
	require.Equal(t, "redis", cfg.StoreDriver)
	require.Equal(t, "kafka", cfg.Broker)
	require.Equal(t, 500*time.Millisecond, cfg.FlushInterval)
	require.Equal(t, 5*time.Minute, cfg.SessionIdle)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.Equal(t, 3, cfg.RedisDB)
	require.True(t, cfg.PrettyLog)
	require.Equal(t, "node-a", cfg.InstanceID)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("FLUSH_INTERVAL", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("PRETTY_LOG", "maybe")

	cfg := Load()
	require.Equal(t, 2*time.Second, cfg.FlushInterval)
	require.Equal(t, 0, cfg.RedisDB)
	require.False(t, cfg.PrettyLog)

	t.Setenv("FLUSH_INTERVAL", "-1s")
	require.Equal(t, 2*time.Second, Load().FlushInterval)
}
