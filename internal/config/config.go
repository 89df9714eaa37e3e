package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the assistant service.
// Environment variables are parsed from the ASSISTANT_ prefix,
// e.g. ASSISTANT_HTTP_PORT, ASSISTANT_SQLITE_PATH.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage: driver is derived from the DSNs when left on "auto"
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/meetings.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Intent classifier (any OpenAI-compatible chat-completions endpoint)
	LLMBaseURL string `envconfig:"LLM_BASE_URL" default:"https://api.groq.com/openai/v1"`
	LLMAPIKey  string `envconfig:"LLM_API_KEY" default:""`
	LLMModel   string `envconfig:"LLM_MODEL" default:"llama-3.1-8b-instant"`

	// Geocoder; empty key disables geocoding and replies fall back to
	// plain address links
	GeocoderURL    string `envconfig:"GEOCODER_URL" default:"https://geocode-maps.yandex.ru/1.x/"`
	GeocoderAPIKey string `envconfig:"GEOCODER_API_KEY" default:""`
}

// ResolveDefaults validates DBDriver and derives it when set to "auto" or empty:
// postgres when a DSN is configured, sqlite otherwise.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("ASSISTANT_SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("ASSISTANT_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ASSISTANT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
