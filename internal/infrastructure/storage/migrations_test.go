package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedSchemaVersion is the highest migration number in migrations/
// Update this when adding new migrations
const expectedSchemaVersion = 2

func TestMigrations_FreshDatabase(t *testing.T) {
	store := createTempStore(t)

	version, err := schemaVersion(store.db, "sqlite3")
	require.NoError(t, err)
	assert.Equal(t, int64(expectedSchemaVersion), version)

	for _, table := range []string{"quotes", "proposals", "comparisons"} {
		var name string
		err := store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrations_Idempotency(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	first, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening runs goose again; nothing should be pending
	second, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer second.Close()

	version, err := schemaVersion(second.db, "sqlite3")
	require.NoError(t, err)
	assert.Equal(t, int64(expectedSchemaVersion), version)
}
