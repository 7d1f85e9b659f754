package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:            "8081",
		RateLimitRPM:    300,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
		ChartWidth:      480,
		ChartHeight:     320,
		ChartCacheSize:  32,
		ChartCacheTTL:   time.Hour,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid default config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "json format and debug level",
			mutate:  func(c *Config) { c.LogFormat = "JSON"; c.LogLevel = "debug" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be text or json",
		},
		{
			name:        "chart too narrow",
			mutate:      func(c *Config) { c.ChartWidth = 50 },
			wantErr:     true,
			errorString: "invalid chart width 50",
		},
		{
			name:        "chart too tall",
			mutate:      func(c *Config) { c.ChartHeight = 5000 },
			wantErr:     true,
			errorString: "invalid chart height 5000",
		},
		{
			name:        "empty chart cache",
			mutate:      func(c *Config) { c.ChartCacheSize = 0 },
			wantErr:     true,
			errorString: "invalid chart cache size 0: must be at least 1",
		},
		{
			name:        "chart cache TTL too short",
			mutate:      func(c *Config) { c.ChartCacheTTL = 10 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid chart cache TTL 10ms",
		},
		{
			name:        "zero rate limit",
			mutate:      func(c *Config) { c.RateLimitRPM = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "shutdown timeout too long",
			mutate:      func(c *Config) { c.ShutdownTimeout = time.Hour },
			wantErr:     true,
			errorString: "invalid shutdown timeout 1h0m0s: must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want error containing %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.RateLimitRPM = -1
	cfg.ChartCacheSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 problems, got %d in %q", got, err.Error())
	}
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "RATE_LIMIT_RPM", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
		"CHART_WIDTH", "CHART_HEIGHT", "CHART_CACHE_SIZE", "CHART_CACHE_TTL",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()
		want := validConfig()
		if *cfg != want {
			t.Errorf("Load() = %+v, want %+v", *cfg, want)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
		if cfg.Addr() != ":8081" {
			t.Errorf("Addr() = %q", cfg.Addr())
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("CHART_WIDTH", "640")
		t.Setenv("CHART_CACHE_TTL", "15m")
		t.Setenv("RATE_LIMIT_RPM", "60")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.LogFormat != "json" {
			t.Errorf("Load() LogFormat = %v, want json", cfg.LogFormat)
		}
		if cfg.ChartWidth != 640 {
			t.Errorf("Load() ChartWidth = %v, want 640", cfg.ChartWidth)
		}
		if cfg.ChartCacheTTL != 15*time.Minute {
			t.Errorf("Load() ChartCacheTTL = %v, want 15m", cfg.ChartCacheTTL)
		}
		if cfg.RateLimitRPM != 60 {
			t.Errorf("Load() RateLimitRPM = %v, want 60", cfg.RateLimitRPM)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("CHART_HEIGHT", "tall")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		cfg := Load()

		if cfg.ChartHeight != 320 {
			t.Errorf("Load() ChartHeight = %v, want 320 (default for invalid input)", cfg.ChartHeight)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 30s (default for invalid input)", cfg.ShutdownTimeout)
		}
	})
}
