package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/textforge_test")
	t.Setenv("ENGINE_URL", "http://localhost:8000")
	t.Setenv("RABBITMQ_URL", "amqp://localhost:5672")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY_ID", "minio")
	t.Setenv("MINIO_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("MINIO_BUCKET_NAME", "archive")
	t.Setenv("MINIO_REGION", "us-east-1")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "default_secret_key", cfg.SessionSecret)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "gpt2", cfg.EngineModel)
	assert.Equal(t, 100, cfg.EngineMaxNewTokens)
	assert.InDelta(t, 0.7, cfg.EngineTemperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.EngineTimeout)
	assert.Equal(t, 4096, cfg.MaxPromptChars)
	assert.Equal(t, 64, cfg.APIThrottleLimit)
	assert.Equal(t, "generation_archive_queue", cfg.RabbitMQ.RabbitMQQueueName)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_SECRET", "prod-secret")
	t.Setenv("ENGINE_MAX_NEW_TOKENS", "256")
	t.Setenv("MAX_PROMPT_CHARS", "1024")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "prod-secret", cfg.SessionSecret)
	assert.Equal(t, 256, cfg.EngineMaxNewTokens)
	assert.Equal(t, 1024, cfg.MaxPromptChars)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "placeholder") // register cleanup before unsetting
	os.Unsetenv("DATABASE_URL")

	_, err := LoadConfig()
	require.Error(t, err)
}
