package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrTodoNotFound signals expected absence. Callers check it with errors.Is
// and translate it to a 404; it is never wrapped into a 500.
var ErrTodoNotFound = errors.New("todo not found")

// Status is the closed set of todo states. The string value is both the wire
// token and the stored value.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns every valid status, in declaration order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// ParseStatus maps a wire token to a Status. Unknown tokens never reach
// storage; they fail here at the validation boundary.
func ParseStatus(token string) (Status, error) {
	status := Status(token)

	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %q", token)
	}

	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}

	return false
}

func (s Status) String() string {
	return string(s)
}

// Todo is the canonical in-memory representation of a stored row.
// Description is a pointer because the column is nullable and "no description"
// is distinct from an empty one.
type Todo struct {
	ID          int
	Title       string
	Description *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
