package models

import "time"

// Activity is a single audit entry for a todo mutation.
type Activity struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	UserID     int       `json:"-"`
	Type       string    `json:"type"` // TODO_CREATED | TODO_UPDATED | TODO_DELETED
	TodoID     string    `json:"todo_id"`
	Detail     string    `json:"detail,omitempty"` // human-readable
}
