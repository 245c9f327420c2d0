package sqlite

import (
	"encoding/json"
	"time"

	"moodlog/internal/journal/domain"
)

// EntryModel represents the database row for the entries table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type EntryModel struct {
	ID     int64
	UserID string
	Date   string
	Slot   string
	Mood   string
	Energy int
	Topics *string // nullable, JSON encoded
	Topic  *string // nullable, pre-migration single topic
	Note   *string // nullable

	CreatedAt int64 // Unix timestamp
	UpdatedAt int64 // Unix timestamp
}

// toEntryModel converts a domain Session to a database EntryModel.
func toEntryModel(userID string, s *domain.Session) *EntryModel {
	m := &EntryModel{
		UserID:    userID,
		Date:      string(s.Date),
		Slot:      string(s.Slot),
		Mood:      string(s.Mood),
		Energy:    s.Energy,
		CreatedAt: s.CreatedAt.Unix(),
		UpdatedAt: s.UpdatedAt.Unix(),
	}
	if len(s.Topics) > 0 {
		topicsJSON, err := json.Marshal(s.Topics)
		if err == nil {
			topics := string(topicsJSON)
			m.Topics = &topics
		}
	}
	if s.Topic != "" {
		topic := s.Topic
		m.Topic = &topic
	}
	if s.Note != "" {
		note := s.Note
		m.Note = &note
	}
	return m
}

// toDomain converts a database EntryModel to a domain Session.
func (m *EntryModel) toDomain() *domain.Session {
	var topics []string
	if m.Topics != nil {
		_ = json.Unmarshal([]byte(*m.Topics), &topics)
	}
	var topic string
	if m.Topic != nil {
		topic = *m.Topic
	}
	var note string
	if m.Note != nil {
		note = *m.Note
	}
	return &domain.Session{
		Date:      domain.Date(m.Date),
		Slot:      domain.Slot(m.Slot),
		Mood:      domain.Mood(m.Mood),
		Energy:    m.Energy,
		Topics:    topics,
		Topic:     topic,
		Note:      note,
		CreatedAt: time.Unix(m.CreatedAt, 0),
		UpdatedAt: time.Unix(m.UpdatedAt, 0),
	}
}

// UserModel represents the database row for the users table.
type UserModel struct {
	ID           string
	DisplayName  *string // nullable
	TopicPresets *string // nullable, JSON encoded

	CreatedAt int64 // Unix timestamp
	UpdatedAt int64 // Unix timestamp
}

// toUserModel converts a domain User to a database UserModel.
func toUserModel(u *domain.User) *UserModel {
	m := &UserModel{
		ID:        u.ID,
		CreatedAt: u.CreatedAt.Unix(),
		UpdatedAt: u.UpdatedAt.Unix(),
	}
	if u.DisplayName != "" {
		name := u.DisplayName
		m.DisplayName = &name
	}
	if len(u.TopicPresets) > 0 {
		presetsJSON, err := json.Marshal(u.TopicPresets)
		if err == nil {
			presets := string(presetsJSON)
			m.TopicPresets = &presets
		}
	}
	return m
}

// toDomain converts a database UserModel to a domain User.
func (m *UserModel) toDomain() *domain.User {
	var name string
	if m.DisplayName != nil {
		name = *m.DisplayName
	}
	var presets []string
	if m.TopicPresets != nil {
		_ = json.Unmarshal([]byte(*m.TopicPresets), &presets)
	}
	return &domain.User{
		ID:           m.ID,
		DisplayName:  name,
		TopicPresets: presets,
		CreatedAt:    time.Unix(m.CreatedAt, 0),
		UpdatedAt:    time.Unix(m.UpdatedAt, 0),
	}
}
