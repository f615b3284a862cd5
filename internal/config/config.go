package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, sourced from the environment with an
// optional .env file for local development.
type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	Env              string        `env:"ENV" envDefault:"development"`
	Debug            bool          `env:"DEBUG" envDefault:"false"`
	DatabasePath     string        `env:"DATABASE_PATH" envDefault:"barter.db"`
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"barter-secret-key"`
	DispatchInterval time.Duration `env:"DISPATCH_INTERVAL" envDefault:"30s"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the service runs with production settings.
func (c *Config) Production() bool {
	return c.Env == "production"
}
