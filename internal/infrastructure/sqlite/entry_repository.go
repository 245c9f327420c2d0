package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"moodlog/internal/journal/domain"
)

// entryColumns is the list of columns to select for entry queries.
const entryColumns = `user_id, date, slot, mood, energy, topics, topic, note, created_at, updated_at`

// entryRepository implements domain.EntryRepository using SQLite.
type entryRepository struct {
	db *sql.DB
}

// newEntryRepository creates a new entryRepository instance.
func newEntryRepository(db *sql.DB) *entryRepository {
	return &entryRepository{db: db}
}

// Ensure entryRepository implements domain.EntryRepository.
var _ domain.EntryRepository = (*entryRepository)(nil)

// scanEntry scans a row into an EntryModel.
func scanEntry(scanner interface{ Scan(...any) error }) (*EntryModel, error) {
	var model EntryModel
	err := scanner.Scan(
		&model.UserID, &model.Date, &model.Slot, &model.Mood, &model.Energy,
		&model.Topics, &model.Topic, &model.Note,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Upsert creates or replaces the session for its (date, slot) pair.
// The conflict target is the (user_id, date, slot) unique index; on replace
// created_at stays at its original value and updated_at is refreshed.
func (r *entryRepository) Upsert(userID string, session *domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	now := time.Now()
	model := toEntryModel(userID, session)
	if session.CreatedAt.IsZero() {
		model.CreatedAt = now.Unix()
	}
	model.UpdatedAt = now.Unix()

	_, err := r.db.Exec(
		`INSERT INTO entries (user_id, date, slot, mood, energy, topics, topic, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date, slot) DO UPDATE SET
			mood = excluded.mood,
			energy = excluded.energy,
			topics = excluded.topics,
			topic = excluded.topic,
			note = excluded.note,
			updated_at = excluded.updated_at`,
		model.UserID, model.Date, model.Slot, model.Mood, model.Energy,
		model.Topics, model.Topic, model.Note,
		model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// FindByID retrieves a session by its composite entry id.
// Returns EntryNotFoundError if no matching entry exists.
func (r *entryRepository) FindByID(userID, entryID string) (*domain.Session, error) {
	date, slot, err := domain.SplitEntryID(entryID)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ? AND date = ? AND slot = ?`,
		userID, string(date), string(slot),
	)
	model, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.EntryNotFoundError{UserID: userID, EntryID: entryID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entry by id: %w", err)
	}
	return model.toDomain(), nil
}

// ListByRange retrieves all sessions with start <= date <= end.
// Results are ordered date ascending, morning before evening within a day.
func (r *entryRepository) ListByRange(userID string, start, end domain.Date) ([]*domain.Session, error) {
	rows, err := r.db.Query(
		`SELECT `+entryColumns+` FROM entries
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC, CASE slot WHEN 'morning' THEN 0 ELSE 1 END ASC`,
		userID, string(start), string(end),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		model, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		sessions = append(sessions, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return sessions, nil
}

// ListByDate retrieves the sessions recorded on a single day.
func (r *entryRepository) ListByDate(userID string, date domain.Date) ([]*domain.Session, error) {
	return r.ListByRange(userID, date, date)
}

// Delete removes a session by its composite entry id.
// Returns EntryNotFoundError if no matching entry exists.
func (r *entryRepository) Delete(userID, entryID string) error {
	date, slot, err := domain.SplitEntryID(entryID)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		`DELETE FROM entries WHERE user_id = ? AND date = ? AND slot = ?`,
		userID, string(date), string(slot),
	)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.EntryNotFoundError{UserID: userID, EntryID: entryID}
	}
	return nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *entryRepository) Close() error {
	return nil
}
