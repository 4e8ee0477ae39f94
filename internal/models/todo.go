package models

import "time"

// TodoStatus is the lifecycle state of a todo item.
type TodoStatus string

const (
	StatusActive    TodoStatus = "ACTIVE"
	StatusCompleted TodoStatus = "COMPLETED"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s TodoStatus) bool {
	return s == StatusActive || s == StatusCompleted
}

// Todo is a single task record. Ownership is enforced server-side, so
// OwnerID and the timestamps never appear on the wire.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TodoStatus `json:"status"` // ACTIVE | COMPLETED
	OwnerID     int        `json:"-"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}
