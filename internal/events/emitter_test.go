package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/events"
)

type recordingHandler struct {
	seen []string
	err  error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *events.TaskEvent) error {
	h.seen = append(h.seen, event.TaskID)
	return h.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTaskDeletedEvent(t *testing.T) {
	t.Parallel()

	t.Run("populates the event", func(t *testing.T) {
		t.Parallel()
		event, err := events.NewTaskDeletedEvent("t1")
		require.NoError(t, err)
		assert.Equal(t, events.EventTaskDeleted, event.Type)
		assert.Equal(t, "t1", event.TaskID)
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("rejects an empty task ID", func(t *testing.T) {
		t.Parallel()
		_, err := events.NewTaskDeletedEvent("")
		assert.ErrorIs(t, err, events.ErrEmptyTaskID)
	})
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	t.Run("fans out to every handler", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(testLogger())
		first := &recordingHandler{}
		second := &recordingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event, err := events.NewTaskDeletedEvent("t1")
		require.NoError(t, err)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, []string{"t1"}, first.seen)
		assert.Equal(t, []string{"t1"}, second.seen)
	})

	t.Run("a failing handler does not stop fan-out", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(testLogger())
		failing := &recordingHandler{err: errors.New("purge failed")}
		healthy := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(healthy)

		event, err := events.NewTaskDeletedEvent("t1")
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, failing.err)
		assert.Len(t, healthy.seen, 1)
	})

	t.Run("no handlers is a no-op", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(testLogger())
		event, err := events.NewTaskDeletedEvent("t1")
		require.NoError(t, err)
		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})
}
