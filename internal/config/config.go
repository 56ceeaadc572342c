package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage modes
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the feasibility service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981"`

	// Simulation backend
	SimulationURL     string        `env:"SIMULATION_URL,default=http://localhost:5000"`
	SimulationTimeout time.Duration `env:"SIMULATION_TIMEOUT,default=30s"`
	SimulationRetries int           `env:"SIMULATION_RETRIES,default=3"`

	// OpenAI configuration. Without a key the report narrative is templated.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// Report storage
	StorageMode     string `env:"STORAGE_MODE,default=local"`
	GCPProjectID    string `env:"GCP_PROJECT_ID"`
	GCSBucket       string `env:"GCS_BUCKET"`
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`

	// Canned simulation results
	MockupMode bool   `env:"MOCKUP_MODE,default=false"`
	MocksDir   string `env:"MOCKS_DIR,default=./internal/mocks/data"`

	// Optional YAML file replacing the built-in turbine catalog
	TurbineCatalog string `env:"TURBINE_CATALOG"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom loads configuration from an arbitrary lookuper
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks combinations the struct tags cannot express
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageMode {
	case StorageLocal:
		if c.LocalReportsDir == "" {
			errs = append(errs, errors.New("LOCAL_REPORTS_DIR is required for local storage"))
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required for gcs storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_MODE %q", c.StorageMode))
	}
	if c.SimulationTimeout <= 0 {
		errs = append(errs, errors.New("SIMULATION_TIMEOUT must be positive"))
	}
	if c.SimulationRetries < 0 {
		errs = append(errs, errors.New("SIMULATION_RETRIES must not be negative"))
	}
	if !c.MockupMode && c.SimulationURL == "" {
		errs = append(errs, errors.New("SIMULATION_URL is required unless MOCKUP_MODE is set"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// NarrativeEnabled reports whether an LLM narrative can be requested
func (c *Config) NarrativeEnabled() bool {
	return c.OpenAIAPIKey != ""
}
