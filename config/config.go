/*
Package config loads the YAML configuration of the rentcalc tool.

PURPOSE:
  The rules themselves take every figure as an argument. What varies per
  installation is the set of DEFAULT contract clauses used when a contract
  leaves one blank, plus how the tool logs and where it drops metrics.

FILE FORMAT:
  terms:
    late_fee_percent: "10"
    daily_interest_percent: "0.33"
    early_termination_months: 3
    payment_day: 10
    duration_months: 12
  logging:
    level: info            # debug | info | warn | error
    format: json           # json | console
  metrics:
    textfile: /var/lib/node_exporter/rentcalc.prom

  Percentages are strings so they are read as exact decimals.

LOOKUP:
  Load(path) reads path; an empty path falls back to $RENTCALC_CONFIG; with
  neither, the built-in defaults are returned unchanged.

SEE ALSO:
  - factory/terms.go: consumes TermsDefaults()
  - observability/logger: consumes Logging
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/warp/rent-engine/engine"
	"github.com/warp/rent-engine/factory"
	"gopkg.in/yaml.v3"
)

// EnvPath names the config file when no path is given.
const EnvPath = "RENTCALC_CONFIG"

var ErrInvalidConfig = errors.New("invalid config")

// =============================================================================
// TYPES
// =============================================================================

// Config is the whole file.
type Config struct {
	Terms   TermsConfig   `yaml:"terms"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// TermsConfig holds the default contract clauses.
type TermsConfig struct {
	LateFeePercent         string `yaml:"late_fee_percent"`
	DailyInterestPercent   string `yaml:"daily_interest_percent"`
	EarlyTerminationMonths int    `yaml:"early_termination_months"`
	PaymentDay             int    `yaml:"payment_day"`
	DurationMonths         int    `yaml:"duration_months"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Textfile is where the registry is written after a run; empty disables it.
	Textfile string `yaml:"textfile"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Terms: TermsConfig{
			LateFeePercent:         "10",
			DailyInterestPercent:   "0.33",
			EarlyTerminationMonths: 3,
			PaymentDay:             10,
			DurationMonths:         12,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the YAML file at path over the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving fields absent from data untouched.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate checks that the default clauses would build valid terms.
func (c Config) Validate() error {
	if _, err := c.TermsDefaults(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// TermsDefaults converts the terms section for the contract factory.
func (c Config) TermsDefaults() (factory.Defaults, error) {
	t := c.Terms

	lateFee, err := engine.ParsePercent(t.LateFeePercent)
	if err != nil {
		return factory.Defaults{}, fmt.Errorf("terms.late_fee_percent: %w", err)
	}
	daily, err := engine.ParsePercent(t.DailyInterestPercent)
	if err != nil {
		return factory.Defaults{}, fmt.Errorf("terms.daily_interest_percent: %w", err)
	}
	if t.PaymentDay < 1 || t.PaymentDay > 31 {
		return factory.Defaults{}, fmt.Errorf("terms.payment_day: %w", engine.ErrInvalidPaymentDay)
	}
	if t.EarlyTerminationMonths < 0 {
		return factory.Defaults{}, fmt.Errorf("terms.early_termination_months: %w", ErrInvalidConfig)
	}
	if t.DurationMonths < 1 {
		return factory.Defaults{}, fmt.Errorf("terms.duration_months: %w", ErrInvalidConfig)
	}

	return factory.Defaults{
		LateFeePercent:         lateFee,
		DailyInterestPercent:   daily,
		EarlyTerminationMonths: t.EarlyTerminationMonths,
		PaymentDay:             t.PaymentDay,
		DurationMonths:         t.DurationMonths,
	}, nil
}
