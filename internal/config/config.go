package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration for both the console client and the stub
// backend. Everything is environment-driven with development defaults.
type Config struct {
	// Client side
	APIBaseURL     string
	RequestTimeout time.Duration
	MaxIdleTime    time.Duration
	StateFile      string
	RateLimitRPS   float64
	RateLimitBurst int

	// Stub backend
	Port           string
	DatabaseURL    string
	AllowedOrigins string
	OpenAPISpec    string

	// Ambient
	LogLevel    string
	LogFormat   string
	Environment string // development, staging, production
}

// Load loads configuration from environment variables and validates it.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxIdleTime:    getDuration("MAX_IDLE_TIME", time.Hour),
		StateFile:      getEnv("STATE_FILE", defaultStateFile()),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:4200"),
		OpenAPISpec:    getEnv("OPENAPI_SPEC", "api/openapi.yaml"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		Environment:    getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	return cfg
}

// Validate checks configuration for correctness.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive (got %s)", c.RequestTimeout)
	}
	if c.MaxIdleTime <= 0 {
		return fmt.Errorf("MAX_IDLE_TIME must be positive (got %s)", c.MaxIdleTime)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1 (got %d)", c.RateLimitBurst)
	}

	if c.IsProduction() && c.AllowedOrigins != "" {
		log.Println("WARNING: Ensure ALLOWED_ORIGINS uses HTTPS in production")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

// defaultStateFile places the session state file under the user cache
// directory, falling back to the temp dir when no cache dir exists.
func defaultStateFile() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "venue-console", "session.dat")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid number for %s: %q, using default %g", key, value, defaultValue)
		return defaultValue
	}
	return f
}
