package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the client configuration
type Config struct {
	APIURL       string `env:"API_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	APIKey       string `env:"API_KEY"`
	SessionToken string `env:"SESSION_TOKEN"`
	LoginID      string `env:"LOGIN_ID"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	MaxRetries     int           `env:"MAX_RETRIES" envDefault:"3" validate:"gte=0,lte=10"`

	RouletteAnimation time.Duration `env:"ROULETTE_ANIMATION" envDefault:"4s" validate:"gte=0"`

	IconCacheSize int           `env:"ICON_CACHE_SIZE" envDefault:"256" validate:"gt=0"`
	IconCacheTTL  time.Duration `env:"ICON_CACHE_TTL" envDefault:"10m" validate:"gt=0"`

	RefreshWorkers int  `env:"REFRESH_WORKERS" envDefault:"4" validate:"gt=0"`
	SSEEnabled     bool `env:"SSE_ENABLED" envDefault:"false"`

	HealthPort int `env:"HEALTH_PORT" envDefault:"8083" validate:"gte=0,lte=65535"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"pointstore-client"`
	Version     string `env:"VERSION" envDefault:"dev"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load(EnvFilePath)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// HasCredentials reports whether any credential is configured
func (c *Config) HasCredentials() bool {
	return c.APIKey != "" || c.SessionToken != ""
}
