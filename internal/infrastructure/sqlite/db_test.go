package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewDB_CreatesDirectory verifies that NewDB creates the parent directory if missing.
func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "searches.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}
}

// TestNewDB_RunsMigrations verifies the searches table exists after NewDB.
func TestNewDB_RunsMigrations(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "searches.db"))
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.Connection().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='searches'",
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "searches", name)
}

// TestNewDB_Reopen verifies migrations are idempotent across restarts.
func TestNewDB_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "searches.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db2.Close())
}

// TestNewDB_PreMigrationBackup verifies an existing database is copied to .bak.
func TestNewDB_PreMigrationBackup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "searches.db")

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.SearchStore().Put(t.Context(), "news", "q"))
	require.NoError(t, db1.Close())

	_, err = os.Stat(dbPath + ".bak")
	require.ErrorIs(t, err, os.ErrNotExist, "no backup for a fresh database")

	db2, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db2.Close()

	info, err := os.Stat(dbPath + ".bak")
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestNewDB_Pragmas(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "searches.db"))
	require.NoError(t, err)
	defer db.Close()

	var busyTimeout int
	require.NoError(t, db.Connection().QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout))
	require.Equal(t, 5000, busyTimeout)

	var foreignKeys int
	require.NoError(t, db.Connection().QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	require.Equal(t, 1, foreignKeys)
}

func TestDB_CloseTwice(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "searches.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
}

func TestNewDB_InvalidPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission semantics differ on windows")
	}
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewDB(filepath.Join(blocker, "searches.db"))
	require.Error(t, err)
}
