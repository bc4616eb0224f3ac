package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every runtime parameter of the application.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerPort  string `env:"SERVER_PORT"`

	// Session signing secret. The default is for local development only and
	// must be overridden in any real deployment.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Generation engine: an OpenAI-style completions server holding the model.
	// The budget knobs are fixed configuration, never taken from the request.
	EngineURL          string        `env:"ENGINE_URL,required"`
	EngineAPIKey       string        `env:"ENGINE_API_KEY"`
	EngineModel        string        `env:"ENGINE_MODEL" envDefault:"gpt2"`
	EngineMaxNewTokens int           `env:"ENGINE_MAX_NEW_TOKENS" envDefault:"100"`
	EngineTemperature  float64       `env:"ENGINE_TEMPERATURE" envDefault:"0.7"`
	EngineTimeout      time.Duration `env:"ENGINE_TIMEOUT" envDefault:"30s"`

	// Request limits for /api.
	MaxPromptChars   int           `env:"MAX_PROMPT_CHARS" envDefault:"4096"`
	APIThrottleLimit int           `env:"API_THROTTLE_LIMIT" envDefault:"64"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Archive pipeline: generation transcripts go through RabbitMQ to S3/MinIO.
	RabbitMQ struct {
		RabbitMQURL       string `env:"RABBITMQ_URL,required"`
		RabbitMQQueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"generation_archive_queue"`
	}

	MinioEndpoint        string `env:"MINIO_ENDPOINT,required"`
	MinioAccessKeyID     string `env:"MINIO_ACCESS_KEY_ID,required"`
	MinioSecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY,required"`
	MinioUseSSL          bool   `env:"MINIO_USE_SSL"`
	MinioBucketName      string `env:"MINIO_BUCKET_NAME,required"`
	MinioRegion          string `env:"MINIO_REGION,required"`
}

// LoadConfig reads configuration from the environment. A .env file is loaded
// first when present so local development does not need exported variables.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration from environment: %w", err)
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "default_secret_key"
	}

	return &cfg, nil
}
