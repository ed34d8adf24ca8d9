package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/service"
	"github.com/MKhiriev/task-manager/internal/utils"
	"github.com/MKhiriev/task-manager/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	user, _ := authenticated(r)

	var req models.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Create(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("task_id", task.ID).Msg("task created")
	utils.WriteJSON(w, task, http.StatusCreated)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	filter, err := parseTaskFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter.Owner = user.ID

	tasks, err := h.services.TaskService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	task, err := h.services.TaskService.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	var payload service.Payload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.Update(r.Context(), user.ID, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authenticated(r)

	task, err := h.services.TaskService.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

// parseTaskFilter reads completed, limit, skip and sortBy=<field>:<order>
// from the query string. Owner is left for the caller.
func parseTaskFilter(query url.Values) (models.TaskFilter, error) {
	var filter models.TaskFilter

	if raw := query.Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: completed=%q", ErrInvalidQuery, raw)
		}
		filter.Completed = &completed
	}

	for name, dst := range map[string]*uint64{"limit": &filter.Limit, "skip": &filter.Skip} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, name, raw)
		}
		*dst = value
	}

	if raw := query.Get("sortBy"); raw != "" {
		filter.SortBy, filter.SortOrder = service.ParseSortBy(raw)
	}

	return filter, nil
}
