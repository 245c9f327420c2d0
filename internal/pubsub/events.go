// Package pubsub provides a generic publish/subscribe event system used to
// fan out journal change notifications and log lines inside the process.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// UpsertedEvent fires after an entry is created or replaced.
	UpsertedEvent EventType = "upserted"

	// DeletedEvent fires after an entry is removed.
	DeletedEvent EventType = "deleted"

	// InvalidatedEvent fires when derived data (report caches) must be
	// recomputed, e.g. after an external write to the database file.
	InvalidatedEvent EventType = "invalidated"

	// CreatedEvent is the generic "new payload" event used by the logger.
	CreatedEvent EventType = "created"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// EntryChange is the payload for journal entry events. Consumers use it to
// invalidate memoized reports for the affected user.
type EntryChange struct {
	UserID  string
	EntryID string
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
