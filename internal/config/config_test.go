package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig())

	assert.Equal(t, "llama3-70b-8192", AppConfig.LLM.Model)
	assert.InDelta(t, 0.3, AppConfig.LLM.Temperature, 1e-9)
	assert.Equal(t, 30*time.Second, AppConfig.LLM.RequestTimeout())
	assert.False(t, AppConfig.Redis.Enabled)
	assert.False(t, AppConfig.Kafka.Enabled)
	assert.Equal(t, "conversation-messages", AppConfig.Kafka.Topic)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://test:test@db:5432/testdb")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("LLM_TEMPERATURE", "0.9")
	t.Setenv("LLM_TIMEOUT", "5")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")

	require.NoError(t, LoadConfig())

	assert.Equal(t, "postgresql://test:test@db:5432/testdb", AppConfig.Database.URL)
	assert.Equal(t, "gpt-4o-mini", AppConfig.LLM.Model)
	assert.InDelta(t, 0.9, AppConfig.LLM.Temperature, 1e-9)
	assert.Equal(t, 5*time.Second, AppConfig.LLM.RequestTimeout())
	assert.True(t, AppConfig.Kafka.Enabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, AppConfig.Kafka.Brokers)
}

func TestLoadConfigRedisEnabledByHost(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TTL", "600")

	require.NoError(t, LoadConfig())

	assert.True(t, AppConfig.Redis.Enabled)
	assert.Equal(t, "cache.internal", AppConfig.Redis.Host)
	assert.Equal(t, "6380", AppConfig.Redis.Port)
	assert.Equal(t, 2, AppConfig.Redis.DB)
	assert.Equal(t, 600, AppConfig.Redis.TTL)
}

func TestRequestTimeoutFallback(t *testing.T) {
	cfg := LLMConfig{Timeout: 0}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())

	cfg.Timeout = -1
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())

	cfg.Timeout = 10
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
}
