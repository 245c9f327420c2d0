package domain

import "time"

// User is the per-profile document holding settings that survive across
// entries, currently the custom topic presets offered by the entry form.
type User struct {
	ID           string
	DisplayName  string
	TopicPresets []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryRepository defines the persistence interface for journal sessions.
// Implementations may use SQLite, in-memory storage, or other backends.
//
// The (user, date, slot) uniqueness invariant lives here: Upsert replaces any
// existing session for the same entry id, so readers never observe duplicates.
type EntryRepository interface {
	// Upsert creates or replaces the session for its (date, slot) pair.
	// CreatedAt is preserved on replace; UpdatedAt is always refreshed.
	Upsert(userID string, session *Session) error

	// FindByID retrieves a session by its composite entry id.
	// Returns EntryNotFoundError if no matching entry exists.
	FindByID(userID, entryID string) (*Session, error)

	// ListByRange retrieves all sessions with start <= date <= end,
	// ordered by date ascending, morning before evening within a day.
	ListByRange(userID string, start, end Date) ([]*Session, error)

	// ListByDate retrieves the sessions recorded on a single day.
	ListByDate(userID string, date Date) ([]*Session, error)

	// Delete removes a session by its composite entry id.
	// Returns EntryNotFoundError if no matching entry exists.
	Delete(userID, entryID string) error

	// Close releases any resources held by the repository.
	Close() error
}

// UserRepository defines the persistence interface for user documents.
type UserRepository interface {
	// Ensure returns the user document, creating it with defaults when absent.
	Ensure(userID string) (*User, error)

	// Find retrieves a user document.
	// Returns UserNotFoundError if no matching user exists.
	Find(userID string) (*User, error)

	// AddTopicPreset appends a preset topic if not already present.
	AddTopicPreset(userID, topic string) error

	// RemoveTopicPreset removes a preset topic if present.
	RemoveTopicPreset(userID, topic string) error

	// ListTopicPresets returns the user's preset topics in insertion order.
	ListTopicPresets(userID string) ([]string, error)
}
