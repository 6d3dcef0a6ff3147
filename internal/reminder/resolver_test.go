package reminder_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/reminder"
)

func reminderBlob(times ...time.Time) string {
	blob := "["
	for i, ts := range times {
		if i > 0 {
			blob += ","
		}
		blob += fmt.Sprintf(`{"date":%q}`, ts.UTC().Format(time.RFC3339))
	}
	return blob + "]"
}

func TestResolverResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("returns past occurrences, skips future ones", func(t *testing.T) {
		t.Parallel()

		tasks := []domain.Task{
			{ID: "t1", Title: "past", Reminders: reminderBlob(now.Add(-time.Hour))},
			{ID: "t2", Title: "future", Reminders: reminderBlob(now.Add(time.Hour))},
			{ID: "t3", Title: "exactly now", Reminders: reminderBlob(now)},
		}

		due, err := reminder.NewResolver(newFakeLedger()).Resolve(context.Background(), now, tasks)
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, "t1", due[0].TaskID)
		assert.Equal(t, "t3", due[1].TaskID)
	})

	t.Run("very late occurrences stay due", func(t *testing.T) {
		t.Parallel()

		tasks := []domain.Task{
			{ID: "t1", Title: "ancient", Reminders: reminderBlob(now.Add(-90 * 24 * time.Hour))},
		}

		due, err := reminder.NewResolver(newFakeLedger()).Resolve(context.Background(), now, tasks)
		require.NoError(t, err)
		assert.Len(t, due, 1)
	})

	t.Run("skips occurrences already in the ledger", func(t *testing.T) {
		t.Parallel()

		when := now.Add(-time.Hour)
		ledger := newFakeLedger()
		rec, err := domain.NewDeliveryRecord(domain.ReminderOccurrence{
			TaskID:       "t1",
			TaskTitle:    "done",
			ReminderTime: when.Unix(),
		}, now)
		require.NoError(t, err)
		require.NoError(t, ledger.Record(context.Background(), rec))

		tasks := []domain.Task{
			{ID: "t1", Title: "done", Reminders: reminderBlob(when)},
			{ID: "t2", Title: "pending", Reminders: reminderBlob(when)},
		}

		due, err := reminder.NewResolver(ledger).Resolve(context.Background(), now, tasks)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "t2", due[0].TaskID)
	})

	t.Run("same time on different tasks is two occurrences", func(t *testing.T) {
		t.Parallel()

		when := now.Add(-time.Minute)
		tasks := []domain.Task{
			{ID: "t1", Title: "a", Reminders: reminderBlob(when)},
			{ID: "t2", Title: "b", Reminders: reminderBlob(when)},
		}

		due, err := reminder.NewResolver(newFakeLedger()).Resolve(context.Background(), now, tasks)
		require.NoError(t, err)
		assert.Len(t, due, 2)
	})

	t.Run("ledger errors propagate", func(t *testing.T) {
		t.Parallel()

		ledger := newFakeLedger()
		ledger.existsErr = errors.New("database is locked")

		tasks := []domain.Task{
			{ID: "t1", Title: "a", Reminders: reminderBlob(now.Add(-time.Minute))},
		}

		_, err := reminder.NewResolver(ledger).Resolve(context.Background(), now, tasks)
		require.Error(t, err)
		assert.ErrorIs(t, err, ledger.existsErr)
	})
}
