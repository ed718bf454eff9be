// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// JWTConfig controls session token signing.
type JWTConfig struct {
	// Secret signs every session token. There is no default: an empty
	// secret is a fatal startup error, never a silently unsigned token.
	Secret string `env:"JWT_SECRET"`

	// Expiry is the session lifetime.
	Expiry time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`
}

// S3Config configures the blob store.
type S3Config struct {
	Bucket    string `env:"BUCKET" envDefault:"sublitr-images"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY_ID"`
	SecretKey string `env:"SECRET_ACCESS_KEY"`
}

// Config is the immutable application configuration. It is constructed
// once in main and injected; nothing reads the environment after Load.
type Config struct {
	// Port the HTTP server binds to.
	Port int `env:"PORT" envDefault:"3000"`

	// ClientOrigin is the SPA origin allowed by CORS.
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:8080"`

	// DatabaseURL is the sqlite DSN.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file::memory:?cache=shared"`

	JWT JWTConfig
	S3  S3Config `envPrefix:"S3_"`
}

// Load reads .env when present, then the environment, then validates.
func Load() (*Config, error) {
	// missing .env is fine; the environment may carry everything
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate applies guardrails to configuration values loaded from env.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: JWT_SECRET must not be empty")
	}

	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("config: JWT_EXPIRY must be positive, got %s", c.JWT.Expiry)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT out of range: %d", c.Port)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
