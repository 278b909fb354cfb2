// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskboard/taskboard/internal/api/shared"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/platform/logger"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/store"
)

// TaskResponse represents the response data for a task
type TaskResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Status bool   `json:"status"`
}

// UpdateTaskRequest represents the request body for a partial task update.
// Absent fields are left unchanged; at least one must be supplied.
type UpdateTaskRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Status *bool   `json:"status"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks requests
// It creates a new task with the given name and optional status.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.Name, req.Status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Bool("status", task.Status))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /tasks requests
// The optional "name" query parameter filters by case-insensitive substring;
// the optional "status" parameter ("true"/"false") filters by completion.
// No parameters supplied returns all tasks, most recently created first.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	filter := store.TaskFilter{
		Name: r.URL.Query().Get("name"),
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := strconv.ParseBool(raw)
		if err != nil {
			log.Warn("invalid status filter", slog.String("status", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status filter: must be true or false")
			return
		}
		filter.Status = &status
	}

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to list tasks", err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task retrieved", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PATCH /tasks/{id} requests
// Only the supplied fields are changed; supplying neither name nor status
// is a validation error.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, service.UpdateTaskParams{
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task updated",
		slog.Int64("task_id", task.ID),
		slog.Bool("status", task.Status))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
// It returns the task as it existed immediately before deletion.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// taskIDFromRequest extracts and parses the task ID from the URL path.
// On failure it writes a 400 response and returns ok=false.
func (h *TaskHandler) taskIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("task ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Task ID is required")
		return 0, false
	}

	id, err := strconv.ParseInt(pathID, 10, 64)
	if err != nil {
		log.Warn("invalid task ID format", slog.String("task_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID format")
		return 0, false
	}

	return id, true
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:     task.ID,
		Name:   task.Name,
		Status: task.Status,
	}
}
