// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/dashboard and cmd/insights.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Dataset drivers — names registered with database/sql
// --------------------------------------------------------------------------

const (
	DriverSQLite   = "sqlite" // modernc.org/sqlite
	DriverPostgres = "pgx"    // github.com/jackc/pgx/v5/stdlib
)

// DefaultDatasetPath is the dataset file the dashboard reads when
// DATASET_PATH is unset.
const DefaultDatasetPath = "cricket_matches.db"

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Dataset
	DatasetDriver string
	DatasetPath   string
	DatabaseURL   string

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache (JSON API only; the HTML page always reads live)
	CacheEnabled bool
	CacheTTL     time.Duration

	// Maintenance tickers (zero disables)
	CachePurgeInterval   time.Duration
	DatasetWatchInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatasetDriver: strings.ToLower(envOr("DATASET_DRIVER", DriverSQLite)),
		DatasetPath:   envOr("DATASET_PATH", DefaultDatasetPath),
		DatabaseURL:   envOr("DATABASE_URL", ""),

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4321",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", false),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_SECONDS", 300)) * time.Second,

		CachePurgeInterval:   time.Duration(envInt("CACHE_PURGE_INTERVAL_SECONDS", 300)) * time.Second,
		DatasetWatchInterval: time.Duration(envInt("DATASET_WATCH_INTERVAL_SECONDS", 60)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the dataset settings are usable.
func (c *Config) Validate() error {
	switch c.DatasetDriver {
	case DriverSQLite:
		if c.DatasetPath == "" {
			return fmt.Errorf("DATASET_PATH must be set for driver %q", DriverSQLite)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("DATASET_DRIVER %q is not supported (use %q or %q)",
			c.DatasetDriver, DriverSQLite, DriverPostgres)
	}
	return nil
}

// DatasetDSN returns the data source name handed to sql.Open. SQLite files
// are always opened read-only.
func (c *Config) DatasetDSN() string {
	if c.DatasetDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return SQLiteDSN(c.DatasetPath)
}

// SQLiteDSN builds a read-only URI for a SQLite dataset file.
func SQLiteDSN(path string) string {
	return "file:" + path + "?mode=ro"
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
