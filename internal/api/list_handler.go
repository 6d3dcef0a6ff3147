package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/store"
)

// ListHandler handles task list HTTP requests.
type ListHandler struct {
	lists  store.ListStore
	logger *slog.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(lists store.ListStore, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		lists:  lists,
		logger: logger.With("component", "list_handler"),
	}
}

// ListLists handles GET /api/lists requests.
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.List(r.Context())
	if err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}
	if lists == nil {
		lists = []domain.TaskList{}
	}
	RespondWithJSON(w, r, http.StatusOK, lists)
}

// SaveList handles PUT /api/lists requests.
func (h *ListHandler) SaveList(w http.ResponseWriter, r *http.Request) {
	var list domain.TaskList
	if err := DecodeJSON(r, &list); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := list.Validate(); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.lists.Save(r.Context(), &list); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, list)
}

// DeleteList handles DELETE /api/lists/{id} requests. Tasks keep their list
// reference; regrouping orphaned tasks is the client's call.
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		RespondWithError(w, r, http.StatusBadRequest, "List ID is required")
		return
	}

	if err := h.lists.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
