// Package backup copies the task database to and from a WebDAV store.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/redact"
)

const (
	backupPrefix = "todo-"
	backupSuffix = ".db"

	// Bigger databases take longer to move than a settings probe.
	transferTimeout = 60 * time.Second
	probeTimeout    = 10 * time.Second
)

// Service errors surfaced to the API layer.
var (
	// ErrNotConfigured is returned when no WebDAV settings have been saved.
	ErrNotConfigured = errors.New("webdav backup is not configured")

	// ErrDisabled is returned when WebDAV backup is configured but turned off.
	ErrDisabled = errors.New("webdav backup is disabled")
)

// SettingsSource supplies the WebDAV settings, read fresh for every
// operation so edits apply without a restart.
type SettingsSource interface {
	LoadWebDAV() (*domain.WebDAVSettings, error)
}

// Service backs up the SQLite database file to a WebDAV collection and
// restores it from there.
type Service struct {
	dbPath   string
	settings SettingsSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a backup Service for the database at dbPath.
func NewService(dbPath string, settings SettingsSource, logger *slog.Logger) *Service {
	return &Service{
		dbPath:   dbPath,
		settings: settings,
		logger:   logger.With("component", "backup"),
		now:      time.Now,
	}
}

// Test probes the configured WebDAV server with the given settings,
// without persisting them. Used by the settings dialog's "test connection"
// button.
func (s *Service) Test(ctx context.Context, settings domain.WebDAVSettings) error {
	return newWebDAVClient(settings, probeTimeout).probe(ctx)
}

// Backup uploads the database file as a timestamped backup and prunes old
// backups beyond the configured maximum. Returns the name of the uploaded
// backup.
func (s *Service) Backup(ctx context.Context) (string, error) {
	settings, client, err := s.client(transferTimeout)
	if err != nil {
		return "", err
	}

	if err := client.mkcol(ctx); err != nil {
		return "", err
	}

	file, err := os.Open(s.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open database file: %w", err)
	}
	defer func() { _ = file.Close() }()

	name := fmt.Sprintf("%s%s%s", backupPrefix, s.now().Format("20060102-150405"), backupSuffix)
	if err := client.put(ctx, name, file); err != nil {
		return "", err
	}

	s.logger.Info("database backed up", "name", name)

	if settings.MaxBackups > 0 {
		if err := s.prune(ctx, client, settings.MaxBackups); err != nil {
			// The upload succeeded; a failed prune is worth a warning,
			// not a failed backup.
			s.logger.Warn("failed to prune old backups", "error", redact.Error(err))
		}
	}

	return name, nil
}

// List returns the available backup names, oldest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	_, client, err := s.client(probeTimeout)
	if err != nil {
		return nil, err
	}
	return client.list(ctx)
}

// Restore downloads the named backup over the local database file. The
// download lands in a temporary file first so a failed transfer cannot
// destroy the current database.
func (s *Service) Restore(ctx context.Context, name string) error {
	_, client, err := s.client(transferTimeout)
	if err != nil {
		return err
	}

	body, err := client.get(ctx, name)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	tmp, err := os.CreateTemp("", "taskdeck-restore-*.db")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to download backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to finish download: %w", err)
	}

	if err := os.Rename(tmpPath, s.dbPath); err != nil {
		return fmt.Errorf("failed to replace database file: %w", err)
	}

	s.logger.Info("database restored from backup", "name", name)
	return nil
}

func (s *Service) prune(ctx context.Context, client *webdavClient, keep int) error {
	names, err := client.list(ctx)
	if err != nil {
		return err
	}
	if len(names) <= keep {
		return nil
	}

	for _, name := range names[:len(names)-keep] {
		if err := client.delete(ctx, name); err != nil {
			return err
		}
		s.logger.Debug("pruned old backup", "name", name)
	}

	return nil
}

func (s *Service) client(timeout time.Duration) (*domain.WebDAVSettings, *webdavClient, error) {
	settings, err := s.settings.LoadWebDAV()
	if err != nil {
		return nil, nil, err
	}
	if settings == nil {
		return nil, nil, ErrNotConfigured
	}
	if !settings.Enabled {
		return nil, nil, ErrDisabled
	}

	return settings, newWebDAVClient(*settings, timeout), nil
}
