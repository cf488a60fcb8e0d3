package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.APIURL != "http://127.0.0.1:5000" {
		t.Errorf("expected default backend address, got %s", cfg.APIURL)
	}
	if cfg.RefreshSeconds != 30 {
		t.Errorf("expected refresh 30, got %d", cfg.RefreshSeconds)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.LogLevel)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TDIDASH_API_URL", "http://backend:9000")
	t.Setenv("TDIDASH_REFRESH_SECONDS", "5")
	t.Setenv("TDIDASH_LOG_LEVEL", "debug")

	cfg := Default()
	cfg.applyEnv()

	if cfg.APIURL != "http://backend:9000" {
		t.Errorf("APIURL = %s", cfg.APIURL)
	}
	if cfg.RefreshSeconds != 5 {
		t.Errorf("RefreshSeconds = %d", cfg.RefreshSeconds)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestRefreshInterval(t *testing.T) {
	cfg := Default()
	cfg.RefreshSeconds = 10
	if cfg.RefreshInterval() != 10*time.Second {
		t.Errorf("interval = %v", cfg.RefreshInterval())
	}

	cfg.RefreshSeconds = 0
	if cfg.RefreshInterval() != 0 {
		t.Error("zero refresh must disable the timer")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if result := cfg.Validate(); !result.IsValid() {
		t.Errorf("default config should be valid, got %v", result.Errors)
	}

	cfg.APIURL = ""
	cfg.RefreshSeconds = -1
	cfg.LogLevel = "loud"
	result := cfg.Validate()
	if result.IsValid() {
		t.Fatal("expected validation errors")
	}
	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}
