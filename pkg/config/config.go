// Package config provides local configuration for the tdidash client. The
// backend's own configuration lives behind /api/config and is handled by the
// api package; this file only covers what the terminal client itself needs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds client-side settings.
type Config struct {
	// APIURL is the base address of the trading bot backend.
	APIURL string `yaml:"api_url"`

	// RefreshSeconds is the auto-refresh interval for the dashboard tab.
	// Zero disables the timer.
	RefreshSeconds int `yaml:"refresh_seconds"`

	// Logging
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:         "http://127.0.0.1:5000",
		RefreshSeconds: 30,
		LogLevel:       "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// ConfigPath() if present, then environment overrides (a .env file in the
// working directory is honored).
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// Best effort; missing .env is the normal case.
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TDIDASH_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("TDIDASH_REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RefreshSeconds = n
		}
	}
	if v := os.Getenv("TDIDASH_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("TDIDASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// RefreshInterval returns the auto-refresh period, or zero when disabled.
func (c *Config) RefreshInterval() time.Duration {
	if c.RefreshSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RefreshSeconds) * time.Second
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s - %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationResult contains all validation errors.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{Errors: make([]ValidationError, 0)}

	if c.APIURL == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field: "api_url", Value: c.APIURL, Message: "backend address must not be empty",
		})
	}
	if c.RefreshSeconds < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field: "refresh_seconds", Value: c.RefreshSeconds, Message: "must be zero or positive",
		})
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field: "log_level", Value: c.LogLevel, Message: "must be debug, info, warn or error",
		})
	}

	return result
}
