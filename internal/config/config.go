// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/dividircuenta/backend/internal/exchange"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	Port         int
	LogLevel     string
	StoreBackend string
	DBPath       string

	RateAPIURL   string
	RateBase     string
	RateTarget   string
	RateCacheTTL time.Duration
	FallbackRate decimal.Decimal
}

// Load reads configuration from environment variables, with a .env file
// as optional source.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         8080,
		LogLevel:     os.Getenv("LOG_LEVEL"),
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		DBPath:       getEnv("DB_PATH", "./data/ledger.db"),
		RateAPIURL:   os.Getenv("RATE_API_URL"),
		RateBase:     getEnv("RATE_BASE", "USD"),
		RateTarget:   getEnv("RATE_TARGET", "HNL"),
		RateCacheTTL: 12 * time.Hour,
		FallbackRate: exchange.DefaultFallbackRate,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", portStr)
		}
		cfg.Port = port
	}

	if ttlStr := os.Getenv("RATE_CACHE_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid RATE_CACHE_TTL: %q", ttlStr)
		}
		cfg.RateCacheTTL = ttl
	}

	if rateStr := os.Getenv("FALLBACK_RATE"); rateStr != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(rateStr))
		if err != nil || !rate.IsPositive() {
			return nil, fmt.Errorf("invalid FALLBACK_RATE: %q", rateStr)
		}
		cfg.FallbackRate = rate
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the configuration is consistent.
func (c *Config) validate() error {
	var errs []string

	switch c.StoreBackend {
	case BackendMemory, BackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("STORE_BACKEND must be %q or %q, got %q",
			BackendMemory, BackendSQLite, c.StoreBackend))
	}

	if c.StoreBackend == BackendSQLite && strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "DB_PATH is required for the sqlite backend")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
