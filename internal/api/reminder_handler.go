package api

import (
	"context"
	"log/slog"
	"net/http"
)

// ReminderTrigger starts one scan-and-dispatch pass on demand.
type ReminderTrigger interface {
	CheckNow(ctx context.Context) error
}

// ReminderHandler exposes the manual reminder check endpoint.
type ReminderHandler struct {
	trigger ReminderTrigger
	logger  *slog.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(trigger ReminderTrigger, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{
		trigger: trigger,
		logger:  logger.With("component", "reminder_handler"),
	}
}

// CheckReminders handles POST /api/reminders/check requests. The pass runs
// synchronously; if one is already running the request gets a 409 and the
// trigger is dropped, not queued.
func (h *ReminderHandler) CheckReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.trigger.CheckNow(r.Context()); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
