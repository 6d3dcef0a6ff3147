package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskListIDEmpty is returned when a task has no owning list.
	ErrTaskListIDEmpty = errors.New("task list ID cannot be empty")
)

// Task represents a single to-do item. The Tags, SubTasks and Reminders
// fields carry serialized JSON blobs owned by the client; the server stores
// them opaquely. The reminder engine only ever reads tasks, it never
// mutates them.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	ListID      string  `json:"listId"`
	Tags        string  `json:"tags"`
	SubTasks    string  `json:"subTasks"`
	Reminders   string  `json:"reminders"`
	DueDate     *string `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	Order       int     `json:"order"`
}

// NewTask creates a Task with a fresh ID and timestamps, belonging to the
// given list. Returns an error if validation fails.
func NewTask(title, listID string) (*Task, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	task := &Task{
		ID:        uuid.New().String(),
		Title:     title,
		Priority:  "none",
		Status:    "todo",
		ListID:    listID,
		Tags:      "[]",
		SubTasks:  "[]",
		Reminders: "[]",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrTaskIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.ListID == "" {
		return ErrTaskListIDEmpty
	}

	return nil
}
