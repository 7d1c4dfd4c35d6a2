package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/emojiabc/internal/history"
	"github.com/vytor/emojiabc/internal/logger"
	"github.com/vytor/emojiabc/internal/stats"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	CatalogPath          string
	StaticDir            string
	HistoryPolicy        string
	AccuracyFormula      string
	SessionTTL           time.Duration
	SessionPruneInterval time.Duration
	WorkerCount          int
	WorkerQueueSize      int
	CookieSecure         bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or unparsable.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:emojiabc.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		CatalogPath:          os.Getenv("CATALOG_PATH"),
		StaticDir:            envOr("STATIC_DIR", "web/static"),
		HistoryPolicy:        envOr("HISTORY_POLICY", "append"),
		AccuracyFormula:      envOr("ACCURACY_FORMULA", "attempts"),
		SessionTTL:           envDurationOr("SESSION_TTL", 24*time.Hour),
		SessionPruneInterval: envDurationOr("SESSION_PRUNE_INTERVAL", 10*time.Minute),
		WorkerCount:          envIntOr("WORKER_COUNT", 1),
		WorkerQueueSize:      envIntOr("WORKER_QUEUE_SIZE", 8),
		CookieSecure:         envBoolOr("COOKIE_SECURE", false),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			errs = append(errs, fmt.Errorf("CATALOG_PATH %q is not readable: %w", c.CatalogPath, err))
		}
	}
	if _, err := history.ParsePolicy(c.HistoryPolicy); err != nil {
		errs = append(errs, fmt.Errorf("HISTORY_POLICY: %w", err))
	}
	if _, err := stats.ParseFormula(c.AccuracyFormula); err != nil {
		errs = append(errs, fmt.Errorf("ACCURACY_FORMULA: %w", err))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive (got %s)", c.SessionTTL))
	}
	if c.SessionPruneInterval <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_PRUNE_INTERVAL must be positive (got %s)", c.SessionPruneInterval))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1 (got %d)", c.WorkerCount))
	}
	if c.WorkerQueueSize < 1 {
		errs = append(errs, fmt.Errorf("WORKER_QUEUE_SIZE must be at least 1 (got %d)", c.WorkerQueueSize))
	}

	return errors.Join(errs...)
}

// Policy returns the parsed HISTORY_POLICY. Call after Validate.
func (c Config) Policy() history.Policy {
	p, _ := history.ParsePolicy(c.HistoryPolicy)
	return p
}

// Formula returns the parsed ACCURACY_FORMULA. Call after Validate.
func (c Config) Formula() stats.Formula {
	f, _ := stats.ParseFormula(c.AccuracyFormula)
	return f
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
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

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
