package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/calmstack/taskdeck/internal/domain"
)

// RestoreRequest represents the request body for restoring a named backup.
type RestoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// BackupResponse reports the name of a freshly created backup.
type BackupResponse struct {
	Name string `json:"name"`
}

// BackupListResponse lists the available remote backups, oldest first.
type BackupListResponse struct {
	Backups []string `json:"backups"`
}

// BackupService is the backup surface the HTTP endpoints need.
type BackupService interface {
	Backup(ctx context.Context) (string, error)
	List(ctx context.Context) ([]string, error)
	Restore(ctx context.Context, name string) error
	Test(ctx context.Context, settings domain.WebDAVSettings) error
}

// BackupHandler handles WebDAV backup HTTP requests.
type BackupHandler struct {
	backups   BackupService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backups BackupService, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		backups:   backups,
		validator: validator.New(),
		logger:    logger.With("component", "backup_handler"),
	}
}

// CreateBackup handles POST /api/backups requests.
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	name, err := h.backups.Backup(r.Context())
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	RespondWithJSON(w, r, http.StatusCreated, BackupResponse{Name: name})
}

// ListBackups handles GET /api/backups requests.
func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	names, err := h.backups.List(r.Context())
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	RespondWithJSON(w, r, http.StatusOK, BackupListResponse{Backups: names})
}

// RestoreBackup handles POST /api/backups/restore requests.
func (h *BackupHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var req RestoreRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.backups.Restore(r.Context(), req.Name); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TestConnection handles POST /api/backups/test requests. The settings in
// the body are probed without being persisted.
func (h *BackupHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var settings domain.WebDAVSettings
	if err := DecodeJSON(r, &settings); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.backups.Test(r.Context(), settings); err != nil {
		h.logger.Debug("webdav connection test failed", "error", err)
		RespondWithError(w, r, http.StatusBadGateway, "WebDAV connection test failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
