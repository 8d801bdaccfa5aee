package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	assert.NoError(t, db.Ping())
}

func TestMigrationsApply(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	for _, table := range []string{"checklist", "notes", "status", "photos"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	// Applying again must be a no-op.
	require.NoError(t, runMigrations(db))

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTestDatabasesAreIsolated(t *testing.T) {
	first, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, first.Close()) })

	second, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	_, err = first.Exec("INSERT INTO notes (id, content) VALUES ('n1', 'hello')")
	require.NoError(t, err)

	var count int
	err = second.QueryRow("SELECT COUNT(*) FROM notes").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
