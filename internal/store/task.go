package store

import (
	"context"
	"database/sql"

	"github.com/calmstack/taskdeck/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Version: 1.0
type TaskStore interface {
	// List retrieves all tasks ordered by their display order.
	List(ctx context.Context) ([]domain.Task, error)

	// ListIncomplete retrieves all tasks whose completion flag is unset.
	// This is the input set for a reminder scan: completed tasks are
	// excluded before reminder extraction ever runs.
	ListIncomplete(ctx context.Context) ([]domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Save upserts a task. An existing task with the same ID is replaced
	// wholesale; there is no partial update.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	//
	// Deleting a task does NOT remove its delivery ledger rows; callers are
	// expected to emit a task-deleted event so the ledger can purge them.
	Delete(ctx context.Context, id string) error

	// Reorder rewrites the display order of the given tasks to match the
	// slice order. The whole rewrite is atomic: either every task gets its
	// new position or none do.
	Reorder(ctx context.Context, orderedIDs []string) error

	// WithTx returns a TaskStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}

// ListStore defines the interface for task list persistence.
// Version: 1.0
type ListStore interface {
	// List retrieves all task lists ordered by their display order.
	List(ctx context.Context) ([]domain.TaskList, error)

	// Save upserts a task list.
	Save(ctx context.Context, list *domain.TaskList) error

	// Delete removes a task list by its ID.
	// Returns ErrListNotFound if the list does not exist.
	Delete(ctx context.Context, id string) error
}
