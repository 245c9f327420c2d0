package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"moodlog/internal/journal/domain"
)

// userColumns is the list of columns to select for user queries.
const userColumns = `id, display_name, topic_presets, created_at, updated_at`

// userRepository implements domain.UserRepository using SQLite.
type userRepository struct {
	db *sql.DB
}

// newUserRepository creates a new userRepository instance.
func newUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

// Ensure userRepository implements domain.UserRepository.
var _ domain.UserRepository = (*userRepository)(nil)

func scanUser(scanner interface{ Scan(...any) error }) (*UserModel, error) {
	var model UserModel
	err := scanner.Scan(
		&model.ID, &model.DisplayName, &model.TopicPresets,
		&model.CreatedAt, &model.UpdatedAt,
	)
	return &model, err
}

// Ensure returns the user document, creating it with defaults when absent.
func (r *userRepository) Ensure(userID string) (*domain.User, error) {
	user, err := r.Find(userID)
	if err == nil {
		return user, nil
	}
	var notFound *domain.UserNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	now := time.Now()
	model := toUserModel(&domain.User{ID: userID, CreatedAt: now, UpdatedAt: now})
	_, err = r.db.Exec(
		`INSERT INTO users (id, display_name, topic_presets, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		model.ID, model.DisplayName, model.TopicPresets, model.CreatedAt, model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.Find(userID)
}

// Find retrieves a user document.
// Returns UserNotFoundError if no matching user exists.
func (r *userRepository) Find(userID string) (*domain.User, error) {
	row := r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = ?`,
		userID,
	)
	model, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.UserNotFoundError{UserID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return model.toDomain(), nil
}

// AddTopicPreset appends a preset topic if not already present.
func (r *userRepository) AddTopicPreset(userID, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return fmt.Errorf("topic must not be empty")
	}

	user, err := r.Ensure(userID)
	if err != nil {
		return err
	}
	if slices.Contains(user.TopicPresets, topic) {
		return nil
	}
	return r.savePresets(userID, append(user.TopicPresets, topic))
}

// RemoveTopicPreset removes a preset topic if present.
func (r *userRepository) RemoveTopicPreset(userID, topic string) error {
	user, err := r.Find(userID)
	if err != nil {
		return err
	}
	i := slices.Index(user.TopicPresets, topic)
	if i < 0 {
		return nil
	}
	return r.savePresets(userID, slices.Delete(user.TopicPresets, i, i+1))
}

// ListTopicPresets returns the user's preset topics in insertion order.
func (r *userRepository) ListTopicPresets(userID string) ([]string, error) {
	user, err := r.Ensure(userID)
	if err != nil {
		return nil, err
	}
	return user.TopicPresets, nil
}

func (r *userRepository) savePresets(userID string, presets []string) error {
	var value *string
	if len(presets) > 0 {
		presetsJSON, err := json.Marshal(presets)
		if err != nil {
			return fmt.Errorf("failed to encode topic presets: %w", err)
		}
		s := string(presetsJSON)
		value = &s
	}

	result, err := r.db.Exec(
		`UPDATE users SET topic_presets = ?, updated_at = ? WHERE id = ?`,
		value, time.Now().Unix(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save topic presets: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &domain.UserNotFoundError{UserID: userID}
	}
	return nil
}
