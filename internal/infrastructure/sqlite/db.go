// Package sqlite persists saved searches in a SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/tagsearch/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the SQLite connection used by the search store.
type DB struct {
	conn      *sql.DB
	path      string
	closeOnce sync.Once
	closeErr  error
}

// NewDB opens (creating if needed) the database at path, backs up an
// existing file to path+".bak" and applies pending migrations.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := backup(path); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Single connection so per-connection pragmas stick.
	conn.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set %q: %w", pragma, err)
		}
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Debug(log.CatStore, "Opened sqlite store", "path", path)
	return &DB{conn: conn, path: path}, nil
}

func runMigrations(conn *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	// m.Close would close conn through the driver; only the source is released.
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// backup copies an existing non-empty database file to path+".bak".
func backup(path string) error {
	src, err := os.Open(path) //nolint:gosec // G304: path comes from config
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat database: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return dst.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// SearchStore returns the saved-search store backed by this database.
// Closing the store closes the database.
func (db *DB) SearchStore() *SearchStore {
	return newSearchStore(db)
}

// Close closes the database. Safe to call more than once.
func (db *DB) Close() error {
	db.closeOnce.Do(func() {
		db.closeErr = db.conn.Close()
	})
	return db.closeErr
}
