package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Ledgerline"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ledgerline"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Pipeline struct {
		// Extraction scores below this threshold send a clean record
		// to human review instead of straight to integration.
		ConfidenceThreshold int           `envconfig:"CONFIDENCE_THRESHOLD" default:"70"`
		Workers             int           `envconfig:"PIPELINE_WORKERS" default:"4"`
		LookupTimeout       time.Duration `envconfig:"LOOKUP_TIMEOUT" default:"2s"`
	}

	Reconcile struct {
		TolerancePct float64 `envconfig:"RECONCILE_TOLERANCE_PCT" default:"0.01"`
		TopK         int     `envconfig:"RECONCILE_TOP_K" default:"5"`
	}

	Retry struct {
		Attempts int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
		Backoff  time.Duration `envconfig:"RETRY_BACKOFF" default:"50ms"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
