package domain

// NotificationSettings controls whether the reminder engine dispatches at
// all, and whether an outbound webhook channel is configured in addition to
// the system notification. The scheduler reloads these on every tick, so an
// edit takes effect within one tick interval.
type NotificationSettings struct {
	Enabled bool   `json:"enabled"`
	Webhook string `json:"webhook,omitempty"`
}

// DefaultNotificationSettings is the fail-open default applied when no
// settings have been saved or the saved file cannot be read: notifications
// stay enabled, no webhook.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: true}
}

// WebDAVSettings configures remote backup of the task database.
type WebDAVSettings struct {
	Enabled    bool   `json:"enabled"`
	URL        string `json:"url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	BasePath   string `json:"basePath"`
	AutoBackup bool   `json:"autoBackup"`
	MaxBackups int    `json:"maxBackups,omitempty"`
}
