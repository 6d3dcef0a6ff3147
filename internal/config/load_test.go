package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmstack/taskdeck/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "data/todo.db", cfg.Database.Path)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 30*time.Second, cfg.Reminder.CheckInterval)
	assert.Equal(t, 120, cfg.Reminder.CleanupEveryTicks)
	assert.Equal(t, 30, cfg.Reminder.RetentionDays)
	assert.Equal(t, 10*time.Second, cfg.Reminder.ChannelTimeout)
	assert.Equal(t, []string{"notify-send"}, cfg.Reminder.ToastCommand)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("TASKDECK_SERVER_PORT", "9090")
	t.Setenv("TASKDECK_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASKDECK_REMINDER_CHECK_INTERVAL", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Reminder.CheckInterval)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("TASKDECK_SERVER_LOG_LEVEL", "loud")
		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("TASKDECK_SERVER_PORT", "70000")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
