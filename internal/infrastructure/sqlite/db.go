// Package sqlite provides the SQLite-backed persistence layer for journal
// entries and user documents.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"moodlog/internal/log"
)

// migrations are applied in order; PRAGMA user_version tracks the last one
// that ran. Never edit an existing entry, only append.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		display_name  TEXT,
		topic_presets TEXT,
		created_at    INTEGER NOT NULL,
		updated_at    INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS entries (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    TEXT NOT NULL REFERENCES users(id),
		date       TEXT NOT NULL,
		slot       TEXT NOT NULL,
		mood       TEXT NOT NULL,
		energy     INTEGER NOT NULL,
		topics     TEXT,
		topic      TEXT,
		note       TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		UNIQUE(user_id, date, slot)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries(user_id, date);`,
}

// DB wraps the SQLite connection and exposes repository constructors.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens (creating if necessary) the database at path, applies pragmas,
// backs up the existing file, and runs pending migrations.
func NewDB(path string) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		if err := backupFile(path); err != nil {
			return nil, fmt.Errorf("failed to back up database: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// backupFile copies an existing database file to path.bak before migrations
// touch it. Missing file means first run, nothing to back up.
func backupFile(path string) error {
	src, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// migrate applies pending migrations tracked by PRAGMA user_version.
func (db *DB) migrate() error {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read user_version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database version %d is newer than this build supports (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.conn.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("failed to set user_version: %w", err)
		}
		log.Debug(log.CatDB, "applied migration", "version", i+1)
	}
	return nil
}

// EntryRepository returns the entry repository backed by this connection.
func (db *DB) EntryRepository() *entryRepository {
	return newEntryRepository(db.conn)
}

// UserRepository returns the user repository backed by this connection.
func (db *DB) UserRepository() *userRepository {
	return newUserRepository(db.conn)
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Path returns the filesystem path the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
