package config

import (
	"os"
	"testing"
	"time"
)

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsProduction(); got != tt.expected {
				t.Errorf("IsProduction() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"prod", "prod", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIBaseURL:     "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
			MaxIdleTime:    time.Hour,
			RateLimitBurst: 1,
		}
	}

	t.Run("valid_config_passes", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("empty_base_url_fails", func(t *testing.T) {
		cfg := valid()
		cfg.APIBaseURL = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("non_positive_timeout_fails", func(t *testing.T) {
		cfg := valid()
		cfg.RequestTimeout = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("non_positive_idle_time_fails", func(t *testing.T) {
		cfg := valid()
		cfg.MaxIdleTime = -time.Second
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})

	t.Run("zero_burst_fails", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimitBurst = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() = nil, want error")
		}
	})
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "45s")
	if got := getDuration("TEST_DURATION", time.Minute); got != 45*time.Second {
		t.Errorf("getDuration() = %v, want 45s", got)
	}

	t.Setenv("TEST_DURATION", "not-a-duration")
	if got := getDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getDuration() fallback = %v, want 1m", got)
	}

	os.Unsetenv("TEST_DURATION")
	if got := getDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getDuration() default = %v, want 1m", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_KEY", "value")
	if got := getEnv("TEST_KEY", "fallback"); got != "value" {
		t.Errorf("getEnv() = %q, want %q", got, "value")
	}
	if got := getEnv("TEST_MISSING_KEY", "fallback"); got != "fallback" {
		t.Errorf("getEnv() = %q, want %q", got, "fallback")
	}
}
