package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/events"
	"github.com/calmstack/taskdeck/internal/store"
)

// ReorderRequest represents the request body for rewriting task display order.
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// DeleteTaskResponse reports what a task deletion removed.
type DeleteTaskResponse struct {
	ID string `json:"id"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks     store.TaskStore
	emitter   events.EventEmitter
	validator *validator.Validate
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks store.TaskStore, emitter events.EventEmitter, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		emitter:   emitter,
		validator: validator.New(),
		logger:    logger.With("component", "task_handler"),
	}
}

// ListTasks handles GET /api/tasks requests.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, task)
}

// SaveTask handles PUT /api/tasks requests. The client owns the full task
// representation; the server validates and upserts it wholesale.
func (h *TaskHandler) SaveTask(w http.ResponseWriter, r *http.Request) {
	var task domain.Task
	if err := DecodeJSON(r, &task); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := task.Validate(); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tasks.Save(r.Context(), &task); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id} requests. After the row is gone
// it emits a task-deleted event so the delivery ledger can purge the task's
// dedup records.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	event, err := events.NewTaskDeletedEvent(id)
	if err == nil {
		if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
			// The task is already deleted; a failed purge leaves harmless
			// stale ledger rows that retention cleanup will remove.
			h.logger.Warn("failed to emit task deleted event", "task_id", id, "error", err)
		}
	}

	RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{ID: id})
}

// ReorderTasks handles POST /api/tasks/reorder requests.
func (h *TaskHandler) ReorderTasks(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.tasks.Reorder(r.Context(), req.IDs); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
