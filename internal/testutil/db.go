// Package testutil provides test utilities for database setup.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema mirrors the production migrations so repository and service tests
// can run against a throwaway in-memory database.
const Schema = `
CREATE TABLE users (
	id            TEXT PRIMARY KEY,
	display_name  TEXT,
	topic_presets TEXT,
	created_at    INTEGER NOT NULL,
	updated_at    INTEGER NOT NULL
);

CREATE TABLE entries (
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

CREATE INDEX idx_entries_user_date ON entries(user_id, date);
`

// NewTestDB creates an in-memory SQLite database with the full schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
