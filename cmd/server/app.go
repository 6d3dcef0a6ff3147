package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/calmstack/taskdeck/internal/api"
	"github.com/calmstack/taskdeck/internal/backup"
	"github.com/calmstack/taskdeck/internal/config"
	"github.com/calmstack/taskdeck/internal/events"
	"github.com/calmstack/taskdeck/internal/notify"
	"github.com/calmstack/taskdeck/internal/platform/sqlite"
	"github.com/calmstack/taskdeck/internal/reminder"
	"github.com/calmstack/taskdeck/internal/settings"
)

// application holds the shared application dependencies so startup wiring
// and shutdown cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	settings  *settings.FileStore
	scheduler *reminder.Scheduler
	backups   *backup.Service
	router    http.Handler
}

// newApplication wires every component together: database, stores, settings,
// notification channels, the reminder scheduler, the backup service, and the
// HTTP router.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlite.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	taskStore := sqlite.NewTaskStore(db)
	listStore := sqlite.NewListStore(db)
	ledger := sqlite.NewDeliveryLedger(db)
	settingsStore := settings.NewFileStore(cfg.Data.Dir)

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(reminder.NewLedgerPurgeHandler(ledger, logger))

	toast, err := notify.NewCommandChannel(cfg.Reminder.ToastCommand)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up system notification channel: %w", err)
	}

	scheduler := reminder.NewScheduler(
		taskStore,
		ledger,
		settingsStore,
		toast,
		reminder.SchedulerConfig{
			CheckInterval:     cfg.Reminder.CheckInterval,
			CleanupEveryTicks: cfg.Reminder.CleanupEveryTicks,
			Retention:         time.Duration(cfg.Reminder.RetentionDays) * 24 * time.Hour,
			ChannelTimeout:    cfg.Reminder.ChannelTimeout,
		},
		logger,
	)

	backups := backup.NewService(cfg.Database.Path, settingsStore, logger)

	router := api.NewRouter(api.Handlers{
		Tasks:     api.NewTaskHandler(taskStore, emitter, logger),
		Lists:     api.NewListHandler(listStore, logger),
		Settings:  api.NewSettingsHandler(settingsStore, logger),
		Backups:   api.NewBackupHandler(backups, logger),
		Reminders: api.NewReminderHandler(scheduler, logger),
	})

	return &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		settings:  settingsStore,
		scheduler: scheduler,
		backups:   backups,
		router:    router,
	}, nil
}

// run starts the reminder scheduler and the HTTP server, then blocks until
// ctx is cancelled and the server has drained.
func (app *application) run(ctx context.Context) error {
	go app.scheduler.Run(ctx)

	app.autoBackup(ctx)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}

// autoBackup uploads a backup on startup when the saved WebDAV settings ask
// for it. Failures are logged, never fatal.
func (app *application) autoBackup(ctx context.Context) {
	webdav, err := app.settings.LoadWebDAV()
	if err != nil || webdav == nil || !webdav.Enabled || !webdav.AutoBackup {
		return
	}

	if _, err := app.backups.Backup(ctx); err != nil {
		app.logger.Warn("automatic startup backup failed", "error", err)
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
