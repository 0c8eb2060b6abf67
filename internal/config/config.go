package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	CachePath   string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string
	PullTimeout time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:        envOr("ADDR", ":8080"),
		CachePath:   envOr("CACHE_PATH", "file:flashdeck-cache.db"),
		DatabaseURL: envOr("DATABASE_URL", "postgres://localhost:5432/flashdeck?sslmode=disable"),
		JWTSecret:   envOr("JWT_SECRET", ""),
		LogLevel:    envOr("LOG_LEVEL", "INFO"),
		PullTimeout: envDurationOr("PULL_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the configuration for values that would prevent startup.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.CachePath == "" {
		problems = append(problems, "CACHE_PATH cannot be empty")
	}
	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.PullTimeout <= 0 {
		problems = append(problems, "PULL_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
