package reminder_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/store"
)

// fakeLedger is an in-memory store.DeliveryLedger with injectable failures.
type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*domain.DeliveryRecord

	existsErr error
	recordErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*domain.DeliveryRecord)}
}

func ledgerKey(taskID string, reminderTime int64) string {
	return fmt.Sprintf("%s|%d", taskID, reminderTime)
}

func (l *fakeLedger) Exists(ctx context.Context, taskID string, reminderTime int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.existsErr != nil {
		return false, l.existsErr
	}
	_, ok := l.records[ledgerKey(taskID, reminderTime)]
	return ok, nil
}

func (l *fakeLedger) Record(ctx context.Context, rec *domain.DeliveryRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.recordErr != nil {
		return l.recordErr
	}
	l.records[ledgerKey(rec.TaskID, rec.ReminderTime)] = rec
	return nil
}

func (l *fakeLedger) DeleteForTask(ctx context.Context, taskID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var removed int64
	for key, rec := range l.records {
		if rec.TaskID == taskID {
			delete(l.records, key)
			removed++
		}
	}
	return removed, nil
}

func (l *fakeLedger) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := olderThan.Unix()
	var removed int64
	for key, rec := range l.records {
		if rec.SentAt < cutoff {
			delete(l.records, key)
			removed++
		}
	}
	return removed, nil
}

func (l *fakeLedger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// fakeTaskStore serves a fixed task slice. Its listStarted and listRelease
// channels, when set, let a test hold a scan pass open mid-flight.
type fakeTaskStore struct {
	tasks   []domain.Task
	listErr error

	listStarted chan struct{}
	listRelease chan struct{}
}

func (s *fakeTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks, s.listErr
}

func (s *fakeTaskStore) ListIncomplete(ctx context.Context) ([]domain.Task, error) {
	if s.listStarted != nil {
		s.listStarted <- struct{}{}
		<-s.listRelease
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	var incomplete []domain.Task
	for _, task := range s.tasks {
		if !task.Completed {
			incomplete = append(incomplete, task)
		}
	}
	return incomplete, nil
}

func (s *fakeTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i], nil
		}
	}
	return nil, store.ErrTaskNotFound
}

func (s *fakeTaskStore) Save(ctx context.Context, task *domain.Task) error { return nil }

func (s *fakeTaskStore) Delete(ctx context.Context, id string) error { return nil }

func (s *fakeTaskStore) Reorder(ctx context.Context, orderedIDs []string) error { return nil }

func (s *fakeTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return s }

// fakeSettings returns canned notification settings.
type fakeSettings struct {
	settings *domain.NotificationSettings
	err      error
}

func (s *fakeSettings) LoadNotification() (*domain.NotificationSettings, error) {
	return s.settings, s.err
}

// fakeChannel records every Send call and optionally fails.
type fakeChannel struct {
	name string
	err  error

	mu    sync.Mutex
	sends []string
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Send(ctx context.Context, title, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sends = append(c.sends, title+"|"+body)
	return c.err
}

func (c *fakeChannel) sendCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sends)
}
