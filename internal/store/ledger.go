package store

import (
	"context"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
)

// DeliveryLedger is the durable dedup store for dispatched reminders.
// It is the only shared mutable resource of the reminder engine: every write
// is an upsert keyed by (task_id, reminder_time), so a retried or raced
// insert is harmless. Records must survive process restarts; an in-memory
// ledger would re-notify every past reminder after a restart.
// Version: 1.0
type DeliveryLedger interface {
	// Exists reports whether a delivery record is present for the
	// occurrence identified by (taskID, reminderTime).
	Exists(ctx context.Context, taskID string, reminderTime int64) (bool, error)

	// Record upserts a delivery record. Idempotent under retry: at most one
	// record per (task_id, reminder_time) pair exists at any time, and a
	// conflicting insert refreshes sent_at and the payload snapshot in
	// place.
	Record(ctx context.Context, rec *domain.DeliveryRecord) error

	// DeleteForTask removes every delivery record belonging to the given
	// task. Invoked when a task is deleted upstream, both to bound growth
	// and to avoid resurrecting stale dedup state if the task ID is ever
	// reused. Returns the number of rows removed.
	DeleteForTask(ctx context.Context, taskID string) (int64, error)

	// Cleanup deletes records sent before the cutoff. Age is measured from
	// sent_at, not reminder_time. Returns the number of rows removed.
	Cleanup(ctx context.Context, olderThan time.Time) (int64, error)
}
