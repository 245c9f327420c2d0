package testutil

import "time"

// entryData holds all data for an entry to be inserted.
type entryData struct {
	userID    string
	date      string
	slot      string
	mood      string
	energy    int
	topics    []string
	topic     string
	note      string
	createdAt time.Time
	updatedAt time.Time
}

// defaultEntry returns an entryData with sensible defaults.
func defaultEntry(date, slot string) entryData {
	now := time.Now()
	return entryData{
		date:      date,
		slot:      slot,
		mood:      "calm",
		energy:    3,
		createdAt: now,
		updatedAt: now,
	}
}

// EntryOption configures an entry during builder setup.
type EntryOption func(*entryData)

// Mood sets the entry mood.
func Mood(mood string) EntryOption {
	return func(e *entryData) { e.mood = mood }
}

// Energy sets the entry energy level (1-5).
func Energy(energy int) EntryOption {
	return func(e *entryData) { e.energy = energy }
}

// Topics sets the entry topics.
func Topics(topics ...string) EntryOption {
	return func(e *entryData) { e.topics = append(e.topics, topics...) }
}

// LegacyTopic sets the pre-migration single-topic column.
func LegacyTopic(topic string) EntryOption {
	return func(e *entryData) { e.topic = topic }
}

// Note sets the entry note.
func Note(note string) EntryOption {
	return func(e *entryData) { e.note = note }
}

// CreatedAt sets the created_at timestamp.
func CreatedAt(t time.Time) EntryOption {
	return func(e *entryData) { e.createdAt = t }
}

// UpdatedAt sets the updated_at timestamp.
func UpdatedAt(t time.Time) EntryOption {
	return func(e *entryData) { e.updatedAt = t }
}
