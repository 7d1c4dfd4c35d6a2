package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/emojiabc/internal/db"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// Float returns a pointer to f, for optional JSON fields.
func Float(f float64) *float64 {
	return &f
}
