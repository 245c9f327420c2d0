package domain

import "fmt"

// EntryNotFoundError indicates no entry exists for the requested id.
type EntryNotFoundError struct {
	UserID  string
	EntryID string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("entry %q not found for user %q", e.EntryID, e.UserID)
}

// UserNotFoundError indicates no user document exists for the requested id.
type UserNotFoundError struct {
	UserID string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user %q not found", e.UserID)
}
