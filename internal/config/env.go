// Package config loads service configuration from the environment and the
// metadata policy from YAML.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends.
const (
	BackendSpanner = "spanner"
	BackendSQLite  = "sqlite"
)

// Config holds application configuration.
type Config struct {
	HTTPAddr string `env:"LEDGER_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr string `env:"LEDGER_GRPC_ADDR" envDefault:":9090"`

	Backend    string `env:"LEDGER_BACKEND" envDefault:"spanner"`
	SpannerDB  string `env:"LEDGER_SPANNER_DATABASE" envDefault:"projects/test-project/instances/dev-instance/databases/ledger-db"`
	SQLitePath string `env:"LEDGER_SQLITE_PATH" envDefault:"ledger.db"`

	LogLevel  string `env:"LEDGER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LEDGER_LOG_FORMAT" envDefault:"text"`

	// PolicyFile is optional. Without it the built-in metadata policy applies.
	PolicyFile string `env:"LEDGER_METADATA_POLICY_FILE"`

	// Tracing is exported only when an endpoint is set.
	OTelEndpoint string `env:"LEDGER_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"LEDGER_OTEL_ENABLED" envDefault:"true"`

	Workers   int `env:"LEDGER_INGEST_WORKERS" envDefault:"8"`
	QueueSize int `env:"LEDGER_INGEST_QUEUE_SIZE" envDefault:"1024"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the service configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendSpanner:
		if strings.TrimSpace(c.SpannerDB) == "" {
			errs = append(errs, errors.New("LEDGER_SPANNER_DATABASE is required for the spanner backend"))
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("LEDGER_SQLITE_PATH is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("LEDGER_INGEST_WORKERS must be positive, got %d", c.Workers))
	}
	if c.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("LEDGER_INGEST_QUEUE_SIZE must be positive, got %d", c.QueueSize))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
