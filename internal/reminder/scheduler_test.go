package reminder_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/reminder"
)

func newTestScheduler(tasks *fakeTaskStore, ledger *fakeLedger, settings *fakeSettings, toast *fakeChannel) *reminder.Scheduler {
	return reminder.NewScheduler(
		tasks,
		ledger,
		settings,
		toast,
		reminder.DefaultSchedulerConfig(),
		discardLogger(),
	)
}

func TestSchedulerCheckNow(t *testing.T) {
	t.Parallel()

	pastBlob := reminderBlob(time.Now().Add(-time.Hour))

	t.Run("dispatches a due reminder exactly once", func(t *testing.T) {
		t.Parallel()

		tasks := &fakeTaskStore{tasks: []domain.Task{
			{ID: "t1", Title: "Pay rent", Reminders: pastBlob},
		}}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		s := newTestScheduler(tasks, ledger, &fakeSettings{}, toast)

		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, 1, toast.sendCount())
		assert.Equal(t, 1, ledger.count())

		// The second pass finds the delivery record and stays quiet.
		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, 1, toast.sendCount())
		assert.Equal(t, 1, ledger.count())
	})

	t.Run("completed tasks never produce notifications", func(t *testing.T) {
		t.Parallel()

		tasks := &fakeTaskStore{tasks: []domain.Task{
			{ID: "t1", Title: "Done already", Completed: true, Reminders: pastBlob},
		}}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		s := newTestScheduler(tasks, ledger, &fakeSettings{}, toast)

		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, 0, toast.sendCount())
		assert.Equal(t, 0, ledger.count())
	})

	t.Run("disabled settings skip the scan entirely", func(t *testing.T) {
		t.Parallel()

		tasks := &fakeTaskStore{tasks: []domain.Task{
			{ID: "t1", Title: "Pay rent", Reminders: pastBlob},
		}}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		settings := &fakeSettings{settings: &domain.NotificationSettings{Enabled: false}}
		s := newTestScheduler(tasks, ledger, settings, toast)

		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, 0, toast.sendCount())
		assert.Equal(t, 0, ledger.count(), "a disabled pass must not mark anything delivered")
	})

	t.Run("unreadable settings fail open", func(t *testing.T) {
		t.Parallel()

		tasks := &fakeTaskStore{tasks: []domain.Task{
			{ID: "t1", Title: "Pay rent", Reminders: pastBlob},
		}}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		settings := &fakeSettings{err: errors.New("corrupt settings file")}
		s := newTestScheduler(tasks, ledger, settings, toast)

		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, 1, toast.sendCount())
	})

	t.Run("configured webhook receives the notification", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		tasks := &fakeTaskStore{tasks: []domain.Task{
			{ID: "t1", Title: "Pay rent", Reminders: pastBlob},
		}}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		settings := &fakeSettings{settings: &domain.NotificationSettings{Enabled: true, Webhook: server.URL}}
		s := newTestScheduler(tasks, ledger, settings, toast)

		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, int64(1), hits.Load())
		assert.Equal(t, 1, toast.sendCount())
	})

	t.Run("unreachable webhook still commits the ledger", func(t *testing.T) {
		t.Parallel()

		tasks := &fakeTaskStore{tasks: []domain.Task{
			{ID: "t1", Title: "Pay rent", Reminders: pastBlob},
		}}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		settings := &fakeSettings{settings: &domain.NotificationSettings{
			Enabled: true,
			Webhook: "http://127.0.0.1:1/hook",
		}}
		s := newTestScheduler(tasks, ledger, settings, toast)

		require.NoError(t, s.CheckNow(context.Background()))
		assert.Equal(t, 1, ledger.count())
	})

	t.Run("overlapping trigger is dropped", func(t *testing.T) {
		t.Parallel()

		tasks := &fakeTaskStore{
			tasks:       []domain.Task{{ID: "t1", Title: "Pay rent", Reminders: pastBlob}},
			listStarted: make(chan struct{}),
			listRelease: make(chan struct{}),
		}
		ledger := newFakeLedger()
		toast := &fakeChannel{name: "system"}
		s := newTestScheduler(tasks, ledger, &fakeSettings{}, toast)

		firstDone := make(chan error, 1)
		go func() {
			firstDone <- s.CheckNow(context.Background())
		}()

		// Wait until the first pass is inside the task listing, then poke it.
		<-tasks.listStarted
		assert.ErrorIs(t, s.CheckNow(context.Background()), reminder.ErrScanInProgress)

		close(tasks.listRelease)
		require.NoError(t, <-firstDone)
		assert.Equal(t, 1, toast.sendCount())
	})
}
