package database

import (
	"database/sql"
	"testing"

	"github.com/diegoclair/vigil-bot/migrator/sqlite"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// SetupTestDB returns a migrated in-memory store with foreign keys on, so
// deleting a group in a test also drops its roster and winner rows
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err, "failed to open in-memory store")

	// a second connection would see an empty database
	conn.SetMaxOpenConns(1)

	require.NoError(t, sqlite.Migrate(conn), "failed to migrate in-memory store")

	return &DB{conn: conn}
}

// CleanupTestDB closes a store opened by SetupTestDB
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	require.NoError(t, db.Close(), "failed to close in-memory store")
}
