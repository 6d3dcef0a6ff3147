package reminder

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/notify"
	"github.com/calmstack/taskdeck/internal/store"
)

// ErrScanInProgress is returned by CheckNow when a scan pass is already
// running. Two simultaneous passes could both see an occurrence as
// undelivered before either commits, so an overlapping trigger is dropped
// rather than queued.
var ErrScanInProgress = errors.New("reminder scan already in progress")

// SettingsSource supplies notification settings. The scheduler reads them
// fresh on every tick so a settings change takes effect within one tick.
type SettingsSource interface {
	LoadNotification() (*domain.NotificationSettings, error)
}

// SchedulerConfig holds the tuning knobs of the scheduler.
type SchedulerConfig struct {
	// CheckInterval is the tick period driving periodic scans.
	CheckInterval time.Duration

	// CleanupEveryTicks runs ledger cleanup once every N ticks.
	CleanupEveryTicks int

	// Retention is how long delivery records are kept after sending.
	Retention time.Duration

	// ChannelTimeout bounds each channel attempt within a dispatch.
	ChannelTimeout time.Duration
}

// DefaultSchedulerConfig returns a SchedulerConfig with reasonable defaults:
// a 30-second scan tick, ledger cleanup roughly hourly, 30-day retention.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		CheckInterval:     30 * time.Second,
		CleanupEveryTicks: 120,
		Retention:         30 * 24 * time.Hour,
		ChannelTimeout:    10 * time.Second,
	}
}

// Scheduler is the single periodic driver of the reminder engine. It owns
// explicit references to its collaborators (task store, delivery ledger,
// settings source, channels) and is constructed once at startup; nothing
// here reaches for ambient global state.
type Scheduler struct {
	tasks      store.TaskStore
	ledger     store.DeliveryLedger
	settings   SettingsSource
	resolver   *Resolver
	dispatcher *Dispatcher
	toast      notify.Channel
	newWebhook func(url string) notify.Channel
	config     SchedulerConfig
	logger     *slog.Logger

	// scanMu is the single-slot gate serializing scan passes; periodic
	// ticks and manual triggers contend on it with TryLock.
	scanMu sync.Mutex

	now func() time.Time
}

// NewScheduler creates a Scheduler. The toast channel is fixed at
// construction; the webhook channel is rebuilt every pass from the freshly
// loaded settings so URL changes apply immediately.
func NewScheduler(
	tasks store.TaskStore,
	ledger store.DeliveryLedger,
	settings SettingsSource,
	toast notify.Channel,
	config SchedulerConfig,
	logger *slog.Logger,
) *Scheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = DefaultSchedulerConfig().CheckInterval
	}
	if config.CleanupEveryTicks <= 0 {
		config.CleanupEveryTicks = DefaultSchedulerConfig().CleanupEveryTicks
	}
	if config.Retention <= 0 {
		config.Retention = DefaultSchedulerConfig().Retention
	}

	log := logger.With("component", "scheduler")

	return &Scheduler{
		tasks:      tasks,
		ledger:     ledger,
		settings:   settings,
		resolver:   NewResolver(ledger),
		dispatcher: NewDispatcher(ledger, config.ChannelTimeout, logger),
		toast:      toast,
		newWebhook: func(url string) notify.Channel {
			return notify.NewWebhookChannel(url, config.ChannelTimeout)
		},
		config: config,
		logger: log,
		now:    time.Now,
	}
}

// Run drives periodic scans until ctx is cancelled. Every tick runs one
// scan pass; every CleanupEveryTicks ticks it additionally prunes the
// ledger. Scan errors are logged and retried on the next tick; no failure
// below this point is allowed to escape and take the process down.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started",
		"check_interval", s.config.CheckInterval,
		"cleanup_every_ticks", s.config.CleanupEveryTicks)

	tick := 0
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return

		case <-ticker.C:
			tick++

			if err := s.runPass(ctx); err != nil && !errors.Is(err, ErrScanInProgress) {
				s.logger.Error("reminder scan failed, will retry next tick", "error", err)
			}

			if tick%s.config.CleanupEveryTicks == 0 {
				cutoff := s.now().Add(-s.config.Retention)
				if _, err := s.ledger.Cleanup(ctx, cutoff); err != nil {
					s.logger.Error("ledger cleanup failed", "error", err)
				}
			}
		}
	}
}

// CheckNow performs one scan-and-dispatch pass out of band, without
// disturbing the periodic timer's phase. Safe to call at any time; returns
// ErrScanInProgress when a pass is already running.
func (s *Scheduler) CheckNow(ctx context.Context) error {
	return s.runPass(ctx)
}

// runPass is the shared scan body behind both the periodic tick and the
// manual trigger. The TryLock keeps passes mutually exclusive; a trigger
// arriving mid-pass is dropped, not queued.
func (s *Scheduler) runPass(ctx context.Context) error {
	if !s.scanMu.TryLock() {
		return ErrScanInProgress
	}
	defer s.scanMu.Unlock()

	settings := s.loadSettings()
	if !settings.Enabled {
		s.logger.Debug("notifications disabled, skipping scan")
		return nil
	}

	tasks, err := s.tasks.ListIncomplete(ctx)
	if err != nil {
		return err
	}

	due, err := s.resolver.Resolve(ctx, s.now(), tasks)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	channels := []notify.Channel{s.toast}
	if settings.Webhook != "" {
		channels = append(channels, s.newWebhook(settings.Webhook))
	}

	s.logger.Info("dispatching due reminders", "count", len(due))

	for _, occ := range due {
		outcome := s.dispatcher.Dispatch(ctx, occ, channels)
		if outcome.LedgerErr != nil {
			// Channels were already attempted; the missing record means
			// this occurrence may redeliver next tick. Documented
			// at-least-once degradation under storage failure.
			s.logger.Error("failed to record delivery",
				"task_id", occ.TaskID,
				"reminder_time", occ.ReminderTime,
				"error", outcome.LedgerErr)
		}
	}

	return nil
}

// loadSettings reads notification settings fresh, falling back to the
// fail-open default (enabled, no webhook) when nothing is saved or the file
// is unreadable.
func (s *Scheduler) loadSettings() domain.NotificationSettings {
	settings, err := s.settings.LoadNotification()
	if err != nil {
		s.logger.Warn("failed to load notification settings, using defaults", "error", err)
		return domain.DefaultNotificationSettings()
	}
	if settings == nil {
		return domain.DefaultNotificationSettings()
	}
	return *settings
}
