package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/goaltrack/goaltrack/internal/db"
)

// NewDB returns an in-memory SQLite database with the real migrations
// applied. Limited to a single connection because every connection to
// ":memory:" is its own database.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
