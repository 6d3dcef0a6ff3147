// Package main implements the entry point for the taskdeck server, a
// personal task manager backend with reminder scheduling, notification
// dispatch, and WebDAV database backup.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/calmstack/taskdeck/internal/config"
	"github.com/calmstack/taskdeck/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database", cfg.Database.Path,
		"check_interval", cfg.Reminder.CheckInterval)

	if err := app.run(ctx); err != nil {
		appLogger.Error("server exited with error", "error", err)
	}
}
