package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodio/models"
)

func setupTestRepo(t *testing.T) (*Repository, *DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "nodio-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Initialize()
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, db, cleanup
}

func countRows(t *testing.T, db *DB, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var count int
	require.NoError(t, db.QueryRow(query, args...).Scan(&count))
	return count
}

func TestSeedIdempotence(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "nodio-seed-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	// First open creates the schema and seed rows
	db, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Initialize())

	assert.Equal(t, 1, countRows(t, db, "folders", "id = ?", models.RootFolderID))
	assert.Equal(t, 1, countRows(t, db, "database_metadata", "key = ?", schemaVersionKey))
	require.NoError(t, db.Close())

	// Reopening never duplicates seed rows
	db, err = New(dbPath)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Initialize())

	assert.Equal(t, 1, countRows(t, db, "folders", "id = ?", models.RootFolderID))
	assert.Equal(t, 1, countRows(t, db, "database_metadata", "key = ?", schemaVersionKey))

	version, initialized, err := db.recordedSchemaVersion()
	require.NoError(t, err)
	assert.True(t, initialized)
	assert.Equal(t, SchemaVersion, version)
}

func TestSharedHandleLifecycle(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "nodio-shared-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	first, err := Open(dbPath)
	require.NoError(t, err)

	// Repeated opens are memoized to the same handle
	second, err := Open(dbPath)
	require.NoError(t, err)
	assert.Same(t, first, second)

	// Close resets the memoization; the next Open yields a fresh handle
	require.NoError(t, Close())
	require.NoError(t, Close()) // closing a closed handle is a no-op

	third, err := Open(dbPath)
	require.NoError(t, err)
	defer Close()
	assert.NotSame(t, first, third)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	repo, db, cleanup := setupTestRepo(t)
	defer cleanup()

	folder := &models.Folder{
		ID:        "tx-folder",
		Name:      "Inside Tx",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	boom := errors.New("boom")
	err := db.WithTx(func(tx *sql.Tx) error {
		row := folderToRow(*folder)
		_, err := tx.Exec(`
			INSERT INTO folders (id, name, parent_id, color, icon, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, row.ID, row.Name, row.ParentID, row.Color, row.Icon, row.CreatedAt, row.UpdatedAt)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetFolderByID("tx-folder")
	require.NoError(t, err)
	assert.Nil(t, got, "rolled-back insert must not be visible")
}

func TestForeignKeysEnforced(t *testing.T) {
	repo, _, cleanup := setupTestRepo(t)
	defer cleanup()

	// A video referencing a nonexistent project must be rejected by the store
	err := repo.CreateVideo(&models.Video{
		ID:        "orphan-video",
		ProjectID: "no-such-project",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.Error(t, err)
}

func TestUnsupportedMigrationPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "nodio-badver-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	db, err := New(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Initialize())

	// Future schema version on disk is a fatal configuration error
	_, err = db.Exec(`UPDATE database_metadata SET value = ? WHERE key = ?`,
		fmt.Sprint(SchemaVersion+1), schemaVersionKey)
	require.NoError(t, err)

	err = db.Initialize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}
