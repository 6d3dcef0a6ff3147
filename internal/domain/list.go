package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// List-specific validation errors
var (
	// ErrListIDEmpty is returned when a list ID is empty.
	ErrListIDEmpty = errors.New("list ID cannot be empty")

	// ErrListNameEmpty is returned when a list name is empty.
	ErrListNameEmpty = errors.New("list name cannot be empty")
)

// TaskList groups tasks under a user-visible name. The built-in lists
// ("all", "today", "week") are seeded by the schema migration and share
// this shape with user-created lists.
type TaskList struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Icon      *string `json:"icon,omitempty"`
	Color     *string `json:"color,omitempty"`
	Order     int     `json:"order"`
	CreatedAt string  `json:"createdAt"`
}

// NewTaskList creates a TaskList with a fresh ID and creation timestamp.
func NewTaskList(name string) (*TaskList, error) {
	list := &TaskList{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the TaskList has valid data.
func (l *TaskList) Validate() error {
	if l.ID == "" {
		return ErrListIDEmpty
	}

	if l.Name == "" {
		return ErrListNameEmpty
	}

	return nil
}
