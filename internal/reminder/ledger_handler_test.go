package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/events"
	"github.com/calmstack/taskdeck/internal/reminder"
)

func TestLedgerPurgeHandler(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, ledger *fakeLedger, taskID string, when time.Time) {
		t.Helper()
		rec, err := domain.NewDeliveryRecord(domain.ReminderOccurrence{
			TaskID:       taskID,
			TaskTitle:    "seeded",
			ReminderTime: when.Unix(),
		}, when)
		require.NoError(t, err)
		require.NoError(t, ledger.Record(context.Background(), rec))
	}

	t.Run("purges records for the deleted task only", func(t *testing.T) {
		t.Parallel()

		ledger := newFakeLedger()
		now := time.Now()
		seed(t, ledger, "t1", now.Add(-time.Hour))
		seed(t, ledger, "t1", now.Add(-2*time.Hour))
		seed(t, ledger, "t2", now.Add(-time.Hour))

		handler := reminder.NewLedgerPurgeHandler(ledger, discardLogger())

		event, err := events.NewTaskDeletedEvent("t1")
		require.NoError(t, err)
		require.NoError(t, handler.HandleEvent(context.Background(), event))

		assert.Equal(t, 1, ledger.count())
	})

	t.Run("ignores events of other types", func(t *testing.T) {
		t.Parallel()

		ledger := newFakeLedger()
		seed(t, ledger, "t1", time.Now())

		handler := reminder.NewLedgerPurgeHandler(ledger, discardLogger())

		event, err := events.NewTaskDeletedEvent("t1")
		require.NoError(t, err)
		event.Type = "task.updated"

		require.NoError(t, handler.HandleEvent(context.Background(), event))
		assert.Equal(t, 1, ledger.count())
	})
}
