package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Tasks     *TaskHandler
	Lists     *ListHandler
	Settings  *SettingsHandler
	Backups   *BackupHandler
	Reminders *ReminderHandler
}

// NewRouter builds the HTTP router with the standard middleware chain and
// all API routes mounted under /api.
func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.ListTasks)
			r.Put("/", h.Tasks.SaveTask)
			r.Post("/reorder", h.Tasks.ReorderTasks)
			r.Get("/{id}", h.Tasks.GetTask)
			r.Delete("/{id}", h.Tasks.DeleteTask)
		})

		r.Route("/lists", func(r chi.Router) {
			r.Get("/", h.Lists.ListLists)
			r.Put("/", h.Lists.SaveList)
			r.Delete("/{id}", h.Lists.DeleteList)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/notifications", h.Settings.GetNotificationSettings)
			r.Put("/notifications", h.Settings.SaveNotificationSettings)
			r.Get("/webdav", h.Settings.GetWebDAVSettings)
			r.Put("/webdav", h.Settings.SaveWebDAVSettings)
		})

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", h.Backups.ListBackups)
			r.Post("/", h.Backups.CreateBackup)
			r.Post("/restore", h.Backups.RestoreBackup)
			r.Post("/test", h.Backups.TestConnection)
		})

		r.Post("/reminders/check", h.Reminders.CheckReminders)
	})

	return r
}
