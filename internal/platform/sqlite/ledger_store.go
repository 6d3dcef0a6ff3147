package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/platform/logger"
	"github.com/calmstack/taskdeck/internal/store"
)

// DeliveryLedger implements the store.DeliveryLedger interface using SQLite.
// Rows live in the sent_reminders table, uniquely keyed by
// (task_id, reminder_time); the id column is an opaque record identifier
// that stays stable across upsert retries.
type DeliveryLedger struct {
	db store.DBTX
}

// NewDeliveryLedger creates a new DeliveryLedger on the given database handle.
func NewDeliveryLedger(db store.DBTX) *DeliveryLedger {
	return &DeliveryLedger{db: db}
}

// Exists reports whether a delivery record is present for the occurrence
// identified by (taskID, reminderTime).
func (l *DeliveryLedger) Exists(ctx context.Context, taskID string, reminderTime int64) (bool, error) {
	query := `SELECT COUNT(*) FROM sent_reminders WHERE task_id = ? AND reminder_time = ?`

	var count int64
	if err := l.db.QueryRowContext(ctx, query, taskID, reminderTime).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query sent reminder: %w", err)
	}

	return count > 0, nil
}

// Record upserts a delivery record. A conflicting insert for the same
// (task_id, reminder_time) pair refreshes sent_at and the payload snapshot
// in place, keeping the original record ID.
func (l *DeliveryLedger) Record(ctx context.Context, rec *domain.DeliveryRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO sent_reminders (id, task_id, reminder_time, sent_at, reminder_data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (task_id, reminder_time) DO UPDATE SET
			sent_at = excluded.sent_at,
			reminder_data = excluded.reminder_data
	`

	_, err := l.db.ExecContext(ctx, query,
		rec.ID, rec.TaskID, rec.ReminderTime, rec.SentAt, rec.Payload)
	if err != nil {
		return fmt.Errorf("failed to record sent reminder: %w", err)
	}

	return nil
}

// DeleteForTask removes every delivery record belonging to the given task.
func (l *DeliveryLedger) DeleteForTask(ctx context.Context, taskID string) (int64, error) {
	result, err := l.db.ExecContext(ctx,
		`DELETE FROM sent_reminders WHERE task_id = ?`, taskID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task reminders: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// Cleanup deletes records sent before the cutoff. Age is measured from
// sent_at, not reminder_time: a very late delivery of an old reminder still
// gets the full retention window.
func (l *DeliveryLedger) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := l.db.ExecContext(ctx,
		`DELETE FROM sent_reminders WHERE sent_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up sent reminders: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected > 0 {
		log.Debug("removed stale delivery records", "count", affected)
	}

	return affected, nil
}
