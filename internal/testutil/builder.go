package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// userData holds data for a user row to be inserted.
type userData struct {
	id           string
	displayName  string
	topicPresets []string
}

// Builder accumulates test data and inserts it in the correct order.
type Builder struct {
	t       *testing.T
	db      *sql.DB
	userID  string
	users   []userData
	entries []entryData
}

// NewBuilder creates a builder for the given test database. Entries added
// with WithEntry belong to "user-1" unless ForUser changes the target.
func NewBuilder(t *testing.T, db *sql.DB) *Builder {
	t.Helper()
	return &Builder{t: t, db: db, userID: "user-1"}
}

// ForUser switches the user subsequent entries are attributed to,
// registering the user row if it is new.
func (b *Builder) ForUser(userID string) *Builder {
	b.userID = userID
	return b.WithUser(userID)
}

// WithUser adds a user row if not already registered.
func (b *Builder) WithUser(userID string) *Builder {
	for _, u := range b.users {
		if u.id == userID {
			return b
		}
	}
	b.users = append(b.users, userData{id: userID})
	return b
}

// WithTopicPresets sets the topic presets on a registered user.
func (b *Builder) WithTopicPresets(userID string, presets ...string) *Builder {
	b.WithUser(userID)
	for i := range b.users {
		if b.users[i].id == userID {
			b.users[i].topicPresets = presets
		}
	}
	return b
}

// WithEntry adds an entry for the current user with optional configuration.
func (b *Builder) WithEntry(date, slot string, opts ...EntryOption) *Builder {
	b.WithUser(b.userID)
	entry := defaultEntry(date, slot)
	entry.userID = b.userID
	for _, opt := range opts {
		opt(&entry)
	}
	b.entries = append(b.entries, entry)
	return b
}

// Build inserts all accumulated data into the database.
func (b *Builder) Build() {
	b.t.Helper()
	// Insert in dependency order: users then entries
	for _, user := range b.users {
		b.insertUser(user)
	}
	for _, entry := range b.entries {
		b.insertEntry(entry.userID, entry)
	}
}

func (b *Builder) insertUser(user userData) {
	b.t.Helper()
	var presets *string
	if len(user.topicPresets) > 0 {
		data, err := json.Marshal(user.topicPresets)
		require.NoError(b.t, err)
		s := string(data)
		presets = &s
	}
	var name *string
	if user.displayName != "" {
		name = &user.displayName
	}
	now := time.Now().Unix()
	_, err := b.db.Exec(
		`INSERT INTO users (id, display_name, topic_presets, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.id, name, presets, now, now,
	)
	require.NoError(b.t, err)
}

func (b *Builder) insertEntry(userID string, entry entryData) {
	b.t.Helper()
	var topics *string
	if len(entry.topics) > 0 {
		data, err := json.Marshal(entry.topics)
		require.NoError(b.t, err)
		s := string(data)
		topics = &s
	}
	var topic, note *string
	if entry.topic != "" {
		topic = &entry.topic
	}
	if entry.note != "" {
		note = &entry.note
	}
	_, err := b.db.Exec(
		`INSERT INTO entries (user_id, date, slot, mood, energy, topics, topic, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, entry.date, entry.slot, entry.mood, entry.energy,
		topics, topic, note, entry.createdAt.Unix(), entry.updatedAt.Unix(),
	)
	require.NoError(b.t, err)
}
