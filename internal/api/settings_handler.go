package api

import (
	"log/slog"
	"net/http"

	"github.com/calmstack/taskdeck/internal/domain"
)

// SettingsStore is the persistence surface the settings endpoints need.
type SettingsStore interface {
	LoadNotification() (*domain.NotificationSettings, error)
	SaveNotification(settings *domain.NotificationSettings) error
	LoadWebDAV() (*domain.WebDAVSettings, error)
	SaveWebDAV(settings *domain.WebDAVSettings) error
}

// SettingsHandler handles settings HTTP requests.
type SettingsHandler struct {
	settings SettingsStore
	logger   *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger.With("component", "settings_handler"),
	}
}

// GetNotificationSettings handles GET /api/settings/notifications requests.
// When nothing has been saved yet it returns the fail-open default rather
// than a 404, so clients never need a special first-run path.
func (h *SettingsHandler) GetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.LoadNotification()
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	if settings == nil {
		defaults := domain.DefaultNotificationSettings()
		settings = &defaults
	}
	RespondWithJSON(w, r, http.StatusOK, settings)
}

// SaveNotificationSettings handles PUT /api/settings/notifications requests.
// The scheduler reads settings fresh each tick, so the change takes effect
// without a restart.
func (h *SettingsHandler) SaveNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.NotificationSettings
	if err := DecodeJSON(r, &settings); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.settings.SaveNotification(&settings); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, settings)
}

// GetWebDAVSettings handles GET /api/settings/webdav requests.
func (h *SettingsHandler) GetWebDAVSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.LoadWebDAV()
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	if settings == nil {
		settings = &domain.WebDAVSettings{}
	}
	RespondWithJSON(w, r, http.StatusOK, settings)
}

// SaveWebDAVSettings handles PUT /api/settings/webdav requests.
func (h *SettingsHandler) SaveWebDAVSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.WebDAVSettings
	if err := DecodeJSON(r, &settings); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.settings.SaveWebDAV(&settings); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, settings)
}
