package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/notify"
)

func TestCommandChannel(t *testing.T) {
	t.Parallel()

	t.Run("rejects an empty command", func(t *testing.T) {
		t.Parallel()
		_, err := notify.NewCommandChannel(nil)
		assert.ErrorIs(t, err, notify.ErrEmptyCommand)
	})

	t.Run("runs the notifier command with title and body", func(t *testing.T) {
		t.Parallel()
		channel, err := notify.NewCommandChannel([]string{"true"})
		require.NoError(t, err)
		assert.Equal(t, "system", channel.Name())
		assert.NoError(t, channel.Send(context.Background(), "Task Reminder", "Task: Pay rent"))
	})

	t.Run("reports a failing command", func(t *testing.T) {
		t.Parallel()
		channel, err := notify.NewCommandChannel([]string{"false"})
		require.NoError(t, err)
		assert.Error(t, channel.Send(context.Background(), "Task Reminder", "Task: Pay rent"))
	})

	t.Run("reports a missing command", func(t *testing.T) {
		t.Parallel()
		channel, err := notify.NewCommandChannel([]string{"definitely-not-a-real-notifier"})
		require.NoError(t, err)
		assert.Error(t, channel.Send(context.Background(), "Task Reminder", "Task: Pay rent"))
	})
}
