package domain

import (
	"fmt"
	"strings"
	"time"
)

// Slot identifies one of the two recording windows per day.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

// String returns the string representation of the slot.
func (s Slot) String() string {
	return string(s)
}

// IsValid returns true if the slot is morning or evening.
func (s Slot) IsValid() bool {
	return s == SlotMorning || s == SlotEvening
}

// Energy bounds for a session's energy level.
const (
	EnergyMin = 1
	EnergyMax = 5
)

// MaxTopicsPerEntry caps how many topics the entry form accepts. The analytics
// core does not enforce it; upstream input handling does.
const MaxTopicsPerEntry = 5

// Session is one recorded mood/energy entry for a date and slot. It is a value
// owned by the storage layer; the analytics core treats it as immutable input.
//
// Topics carries the multi-topic set. Topic is the legacy single-topic field
// kept for entries written before the migration; NormalizedTopics resolves the
// two shapes into one canonical list.
type Session struct {
	Date   Date
	Slot   Slot
	Mood   Mood
	Energy int
	Topics []string
	Topic  string
	Note   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession validates and constructs a session.
func NewSession(date Date, slot Slot, mood Mood, energy int, topics []string, note string) (*Session, error) {
	s := &Session{
		Date:   date,
		Slot:   slot,
		Mood:   mood,
		Energy: energy,
		Topics: topics,
		Note:   note,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that all required fields hold well-formed values.
func (s *Session) Validate() error {
	if !s.Date.IsValid() {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", s.Date)
	}
	if !s.Slot.IsValid() {
		return fmt.Errorf("invalid slot %q: want %q or %q", s.Slot, SlotMorning, SlotEvening)
	}
	if !s.Mood.IsValid() {
		return fmt.Errorf("invalid mood %q", s.Mood)
	}
	if s.Energy < EnergyMin || s.Energy > EnergyMax {
		return fmt.Errorf("invalid energy %d: want %d..%d", s.Energy, EnergyMin, EnergyMax)
	}
	return nil
}

// EntryID returns the composite identifier for the (date, slot) pair,
// e.g. "2026-01-07_morning". At most one session exists per entry id; the
// storage layer upserts on it.
func (s *Session) EntryID() string {
	return MakeEntryID(s.Date, s.Slot)
}

// MakeEntryID builds the composite entry identifier for a date and slot.
func MakeEntryID(date Date, slot Slot) string {
	return fmt.Sprintf("%s_%s", date, slot)
}

// SplitEntryID parses an entry id back into its date and slot parts.
func SplitEntryID(id string) (Date, Slot, error) {
	i := strings.LastIndex(id, "_")
	if i < 0 {
		return "", "", fmt.Errorf("invalid entry id %q", id)
	}
	date, err := ParseDate(id[:i])
	if err != nil {
		return "", "", fmt.Errorf("invalid entry id %q: %w", id, err)
	}
	slot := Slot(id[i+1:])
	if !slot.IsValid() {
		return "", "", fmt.Errorf("invalid entry id %q: unknown slot %q", id, slot)
	}
	return date, slot, nil
}

// NormalizedTopics resolves the legacy and multi-topic shapes into one
// canonical list: the Topics slice wins when it has any usable value, the
// legacy Topic field substitutes otherwise. Entries are trimmed, empties
// dropped, and duplicates removed preserving first-seen order. Downstream
// aggregation never branches on field shape.
func (s *Session) NormalizedTopics() []string {
	out := make([]string, 0, len(s.Topics))
	seen := make(map[string]struct{}, len(s.Topics))
	for _, t := range s.Topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > 0 {
		return out
	}
	if legacy := strings.TrimSpace(s.Topic); legacy != "" {
		return []string{legacy}
	}
	return nil
}
