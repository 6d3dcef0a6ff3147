package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Data     DataConfig     `mapstructure:"data"     validate:"required"`
	Reminder ReminderConfig `mapstructure:"reminder" validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// DataConfig locates the directory holding JSON settings files
// (notification settings, WebDAV settings).
type DataConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// ReminderConfig tunes the reminder scheduling engine.
type ReminderConfig struct {
	// CheckInterval is the scheduler tick period.
	CheckInterval time.Duration `mapstructure:"check_interval" validate:"required"`

	// CleanupEveryTicks runs ledger cleanup once every N ticks.
	CleanupEveryTicks int `mapstructure:"cleanup_every_ticks" validate:"required,gt=0"`

	// RetentionDays is how long delivery records are kept, measured from
	// the time they were sent.
	RetentionDays int `mapstructure:"retention_days" validate:"required,gt=0"`

	// ChannelTimeout bounds each notification channel attempt so a hung
	// webhook can never block shutdown indefinitely.
	ChannelTimeout time.Duration `mapstructure:"channel_timeout" validate:"required"`

	// ToastCommand is the system notification command; title and body are
	// appended as the final two arguments.
	ToastCommand []string `mapstructure:"toast_command" validate:"required,min=1"`
}
