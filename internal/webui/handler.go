// Package webui serves the task-tracking web GUI. It renders the task
// list server-side and translates form submissions into Task Store API
// calls through the client package. After every successful mutation it
// redirects back to the list so the page re-fetches from the store;
// the GUI never reconciles partial state itself.
package webui

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taskboard/taskboard/internal/client"
	"github.com/taskboard/taskboard/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TaskAPI is the slice of the store client the GUI depends on.
// *client.Client satisfies it.
type TaskAPI interface {
	CreateTask(ctx context.Context, name string, status bool) (*domain.Task, error)
	ListTasks(ctx context.Context, filter client.ListFilter) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id int64, params client.UpdateParams) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (*domain.Task, error)
}

// pageData is the view model for the task list page.
type pageData struct {
	Tasks   []domain.Task
	Counts  Counts
	Filters FilterState
	Error   string

	// FormName and FormStatus repopulate the add form after a failed
	// submission so the user's input is not lost.
	FormName   string
	FormStatus bool
}

// Handler serves the web GUI.
type Handler struct {
	api      TaskAPI
	logger   *slog.Logger
	template *template.Template
}

// NewHandler creates a Handler backed by the given API client.
func NewHandler(api TaskAPI, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for webui Handler")
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	return &Handler{
		api:      api,
		logger:   logger.With(slog.String("component", "webui")),
		template: tmpl,
	}, nil
}

// Routes returns the router for the GUI.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ShowTasks)
	r.Post("/tasks", h.AddTask)
	r.Post("/tasks/{id}/rename", h.RenameTask)
	r.Post("/tasks/{id}/status", h.SetTaskStatus)
	r.Post("/tasks/{id}/delete", h.DeleteTask)
	return r
}

// ShowTasks handles GET / and renders the task list with the current filters.
func (h *Handler) ShowTasks(w http.ResponseWriter, r *http.Request) {
	filters := ParseFilterState(r.URL.Query())
	h.renderList(w, r, filters, pageData{})
}

// AddTask handles the add form. An empty name after trimming is rejected
// locally without calling the API; every other failure surfaces the
// server's message verbatim.
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	filters := ParseFilterState(r.PostForm)
	name := strings.TrimSpace(r.PostFormValue("name"))
	status := r.PostFormValue("status") != ""

	if name == "" {
		h.renderList(w, r, filters, pageData{
			Error:      "Task name cannot be empty",
			FormStatus: status,
		})
		return
	}

	if _, err := h.api.CreateTask(r.Context(), name, status); err != nil {
		h.logger.Debug("add task failed", slog.String("error", err.Error()))
		h.renderList(w, r, filters, pageData{
			Error:      userMessage(err),
			FormName:   name,
			FormStatus: status,
		})
		return
	}

	h.redirectToList(w, r, filters)
}

// RenameTask handles an inline rename. Only the name field is sent to
// the store.
func (h *Handler) RenameTask(w http.ResponseWriter, r *http.Request) {
	id, filters, ok := h.formTarget(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		h.renderList(w, r, filters, pageData{Error: "Task name cannot be empty"})
		return
	}

	if _, err := h.api.UpdateTask(r.Context(), id, client.UpdateParams{Name: &name}); err != nil {
		h.logger.Debug("rename task failed",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		h.renderList(w, r, filters, pageData{Error: userMessage(err)})
		return
	}

	h.redirectToList(w, r, filters)
}

// SetTaskStatus handles an inline status toggle. Only the status field
// is sent to the store.
func (h *Handler) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, filters, ok := h.formTarget(w, r)
	if !ok {
		return
	}

	status, err := strconv.ParseBool(r.PostFormValue("status"))
	if err != nil {
		h.renderList(w, r, filters, pageData{Error: "Invalid status value"})
		return
	}

	if _, err := h.api.UpdateTask(r.Context(), id, client.UpdateParams{Status: &status}); err != nil {
		h.logger.Debug("toggle task failed",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		h.renderList(w, r, filters, pageData{Error: userMessage(err)})
		return
	}

	h.redirectToList(w, r, filters)
}

// DeleteTask handles a row delete.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, filters, ok := h.formTarget(w, r)
	if !ok {
		return
	}

	if _, err := h.api.DeleteTask(r.Context(), id); err != nil {
		h.logger.Debug("delete task failed",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		h.renderList(w, r, filters, pageData{Error: userMessage(err)})
		return
	}

	h.redirectToList(w, r, filters)
}

// formTarget parses the form and the row's backing task ID.
func (h *Handler) formTarget(w http.ResponseWriter, r *http.Request) (int64, FilterState, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return 0, FilterState{}, false
	}

	filters := ParseFilterState(r.PostForm)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderList(w, r, filters, pageData{Error: "Invalid task ID"})
		return 0, FilterState{}, false
	}

	return id, filters, true
}

// redirectToList sends the post-redirect-get hop back to the filtered
// list, which re-fetches the tasks from the store.
func (h *Handler) redirectToList(w http.ResponseWriter, r *http.Request, filters FilterState) {
	target := "/"
	if encoded := filters.Encode().Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// renderList fetches the current list for the given filters and renders
// the page. A fetch failure renders an empty list with the error so the
// user always sees a visible message.
func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, filters FilterState, data pageData) {
	tasks, err := h.api.ListTasks(r.Context(), filters.ListFilter())
	if err != nil {
		h.logger.Error("failed to fetch task list", slog.String("error", err.Error()))
		if data.Error == "" {
			data.Error = userMessage(err)
		}
		tasks = nil
	}

	data.Tasks = tasks
	data.Counts = CountTasks(tasks)
	data.Filters = filters

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		h.logger.Error("failed to render template", slog.String("error", err.Error()))
	}
}

// userMessage extracts the message to show the user for a failed API
// call. Server-reported messages are surfaced verbatim; transport
// failures get a generic message.
func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Could not reach the task store. Please try again."
}
