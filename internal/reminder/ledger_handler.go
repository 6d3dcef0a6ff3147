package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calmstack/taskdeck/internal/events"
	"github.com/calmstack/taskdeck/internal/store"
)

// LedgerPurgeHandler removes a task's delivery records when the task is
// deleted. Without it the ledger would grow without bound, and a reused
// task ID could inherit stale dedup state and silently swallow reminders.
type LedgerPurgeHandler struct {
	ledger store.DeliveryLedger
	logger *slog.Logger
}

// NewLedgerPurgeHandler creates a handler purging the given ledger.
func NewLedgerPurgeHandler(ledger store.DeliveryLedger, logger *slog.Logger) *LedgerPurgeHandler {
	return &LedgerPurgeHandler{
		ledger: ledger,
		logger: logger.With("component", "ledger_purge_handler"),
	}
}

// HandleEvent purges delivery records for deleted tasks. Events of other
// types are ignored.
func (h *LedgerPurgeHandler) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	if event.Type != events.EventTaskDeleted {
		return nil
	}

	removed, err := h.ledger.DeleteForTask(ctx, event.TaskID)
	if err != nil {
		return fmt.Errorf("failed to purge delivery records for task %s: %w", event.TaskID, err)
	}

	h.logger.Debug("purged delivery records for deleted task",
		"task_id", event.TaskID,
		"removed", removed)

	return nil
}
