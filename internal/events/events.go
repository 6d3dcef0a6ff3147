package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task lifecycle event types.
const (
	// EventTaskDeleted is emitted after a task row has been removed from
	// the task store. The delivery ledger listens for it to purge the
	// task's dedup records.
	EventTaskDeleted = "task.deleted"
)

// ErrEmptyTaskID is returned when constructing an event without a task ID.
var ErrEmptyTaskID = errors.New("event task ID cannot be empty")

// TaskEvent describes something that happened to a task. Events are
// in-process only; they exist so interested subsystems can react to task
// lifecycle changes without the stores importing each other.
type TaskEvent struct {
	ID        uuid.UUID
	Type      string
	TaskID    string
	CreatedAt time.Time
}

// NewTaskDeletedEvent creates an event announcing that the given task was
// deleted.
func NewTaskDeletedEvent(taskID string) (*TaskEvent, error) {
	if taskID == "" {
		return nil, ErrEmptyTaskID
	}

	return &TaskEvent{
		ID:        uuid.New(),
		Type:      EventTaskDeleted,
		TaskID:    taskID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes task events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventEmitter publishes task events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
