package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/emojiabc/internal/config"
	"github.com/vytor/emojiabc/internal/history"
	"github.com/vytor/emojiabc/internal/stats"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		HistoryPolicy:        "append",
		AccuracyFormula:      "attempts",
		SessionTTL:           time.Hour,
		SessionPruneInterval: time.Minute,
		WorkerCount:          1,
		WorkerQueueSize:      8,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_SingleField(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{name: "empty addr", mutate: func(c *config.Config) { c.Addr = "" }, expectedError: "ADDR cannot be empty"},
		{name: "empty db path", mutate: func(c *config.Config) { c.DBPath = "" }, expectedError: "DB_PATH cannot be empty"},
		{name: "bad log level", mutate: func(c *config.Config) { c.LogLevel = "LOUD" }, expectedError: "LOG_LEVEL"},
		{name: "empty log level", mutate: func(c *config.Config) { c.LogLevel = "" }, expectedError: "LOG_LEVEL"},
		{name: "missing catalog", mutate: func(c *config.Config) { c.CatalogPath = "/nonexistent/emojis.yaml" }, expectedError: "CATALOG_PATH"},
		{name: "bad policy", mutate: func(c *config.Config) { c.HistoryPolicy = "merge" }, expectedError: "HISTORY_POLICY"},
		{name: "bad formula", mutate: func(c *config.Config) { c.AccuracyFormula = "median" }, expectedError: "ACCURACY_FORMULA"},
		{name: "zero ttl", mutate: func(c *config.Config) { c.SessionTTL = 0 }, expectedError: "SESSION_TTL"},
		{name: "negative prune interval", mutate: func(c *config.Config) { c.SessionPruneInterval = -time.Second }, expectedError: "SESSION_PRUNE_INTERVAL"},
		{name: "zero workers", mutate: func(c *config.Config) { c.WorkerCount = 0 }, expectedError: "WORKER_COUNT"},
		{name: "zero queue", mutate: func(c *config.Config) { c.WorkerQueueSize = 0 }, expectedError: "WORKER_QUEUE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_LowercaseLevelAccepted(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "debug"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ExistingCatalogPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emojis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`"A": [{emoji: "🍎", name: "Apple"}]`), 0o644))

	cfg := validConfig()
	cfg.CatalogPath = path
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID"}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "HISTORY_POLICY")
	assert.Contains(t, errStr, "ACCURACY_FORMULA")
	assert.Contains(t, errStr, "SESSION_TTL")
	assert.Contains(t, errStr, "WORKER_COUNT")
	assert.Contains(t, errStr, "WORKER_QUEUE_SIZE")
}

func TestParsedAccessors(t *testing.T) {
	cfg := validConfig()
	cfg.HistoryPolicy = "dedupe"
	cfg.AccuracyFormula = "error-fraction"

	assert.Equal(t, history.PolicyDedupe, cfg.Policy())
	assert.Equal(t, stats.FormulaErrorFraction, cfg.Formula())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("HISTORY_POLICY", "dedupe")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("WORKER_COUNT", "3")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "dedupe", cfg.HistoryPolicy)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_PRUNE_INTERVAL", "soon")
	t.Setenv("WORKER_QUEUE_SIZE", "many")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := config.Load()

	assert.Equal(t, 10*time.Minute, cfg.SessionPruneInterval)
	assert.Equal(t, 8, cfg.WorkerQueueSize)
	assert.False(t, cfg.CookieSecure)
}
