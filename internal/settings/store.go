// Package settings persists user preference blobs as JSON files under the
// application data directory, matching what the desktop client reads and
// writes.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/calmstack/taskdeck/internal/domain"
)

const (
	notificationFile = "notification_settings.json"
	webdavFile       = "webdav_settings.json"
)

// FileStore reads and writes settings files under a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// lazily on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// LoadNotification returns the saved notification settings, or (nil, nil)
// when nothing has been saved yet. Callers are expected to apply the
// fail-open default in both the nil and the error case.
func (s *FileStore) LoadNotification() (*domain.NotificationSettings, error) {
	var settings domain.NotificationSettings
	ok, err := s.load(notificationFile, &settings)
	if err != nil || !ok {
		return nil, err
	}
	return &settings, nil
}

// SaveNotification persists notification settings.
func (s *FileStore) SaveNotification(settings *domain.NotificationSettings) error {
	return s.save(notificationFile, settings)
}

// LoadWebDAV returns the saved WebDAV backup settings, or (nil, nil) when
// nothing has been saved yet.
func (s *FileStore) LoadWebDAV() (*domain.WebDAVSettings, error) {
	var settings domain.WebDAVSettings
	ok, err := s.load(webdavFile, &settings)
	if err != nil || !ok {
		return nil, err
	}
	return &settings, nil
}

// SaveWebDAV persists WebDAV backup settings.
func (s *FileStore) SaveWebDAV(settings *domain.WebDAVSettings) error {
	return s.save(webdavFile, settings)
}

func (s *FileStore) load(name string, out any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return true, nil
}

func (s *FileStore) save(name string, in any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
