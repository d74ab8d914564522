package main

import (
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"DATABASE_URL", "DB_MAX_CONNS", "ADDR", "FRONTEND_URL", "REDIS_URL", "ANALYTICS_CACHE_TTL",
	"ANALYTICS_CONCURRENCY", "RATE_LIMIT_PER_MINUTE", "METRICS_WINDOW", "LOG_LEVEL", "LOG_FORMAT",
	"SHUTDOWN_TIMEOUT",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatabaseURL != defaultDatabaseURL {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.Addr != defaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, defaultAddr)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
	if cfg.AnalyticsCacheTTL != defaultCacheTTL {
		t.Errorf("AnalyticsCacheTTL = %v", cfg.AnalyticsCacheTTL)
	}
	if cfg.RateLimitPerMinute != defaultRateLimit || cfg.MetricsWindow != defaultMetricsWindow {
		t.Errorf("unexpected limits: %+v", cfg)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadConfig_EnvThenFlags(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("ADDR", ":9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ANALYTICS_CACHE_TTL", "30s")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := LoadConfig([]string{"-addr", ":9100", "-rate-limit", "0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Errorf("flag should override env: Addr = %q", cfg.Addr)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.AnalyticsCacheTTL != 30*time.Second {
		t.Errorf("AnalyticsCacheTTL = %v, want 30s", cfg.AnalyticsCacheTTL)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Errorf("RateLimitPerMinute = %d, want 0", cfg.RateLimitPerMinute)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		envVars     map[string]string
		errorSubstr string
	}{
		{
			name:        "invalid ttl from env",
			envVars:     map[string]string{"ANALYTICS_CACHE_TTL": "soon"},
			errorSubstr: "invalid ANALYTICS_CACHE_TTL",
		},
		{
			name:        "invalid rate limit from env",
			envVars:     map[string]string{"RATE_LIMIT_PER_MINUTE": "lots"},
			errorSubstr: "invalid RATE_LIMIT_PER_MINUTE",
		},
		{
			name:        "zero metrics window",
			args:        []string{"-metrics-window", "0"},
			errorSubstr: "metrics window must be positive",
		},
		{
			name:        "zero concurrency",
			args:        []string{"-analytics-concurrency", "0"},
			errorSubstr: "analytics concurrency must be positive",
		},
		{
			name:        "negative rate limit",
			args:        []string{"-rate-limit", "-1"},
			errorSubstr: "rate limit cannot be negative",
		},
		{
			name:        "empty addr",
			args:        []string{"-addr", " "},
			errorSubstr: "addr cannot be empty",
		},
		{
			name:        "unknown log format",
			args:        []string{"-log-format", "xml"},
			errorSubstr: "unsupported log format",
		},
		{
			name:        "unknown flag",
			args:        []string{"-nope"},
			errorSubstr: "flag provided but not defined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadConfig(tt.args)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errorSubstr)
			}
			if !strings.Contains(err.Error(), tt.errorSubstr) {
				t.Errorf("expected error containing %q, got %q", tt.errorSubstr, err.Error())
			}
		})
	}
}
