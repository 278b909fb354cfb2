package webui

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/client"
	"github.com/taskboard/taskboard/internal/domain"
)

// MockTaskAPI is a mock implementation of TaskAPI for testing
type MockTaskAPI struct {
	CreateTaskFn func(ctx context.Context, name string, status bool) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context, filter client.ListFilter) ([]domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int64, params client.UpdateParams) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int64) (*domain.Task, error)
}

func (m *MockTaskAPI) CreateTask(
	ctx context.Context,
	name string,
	status bool,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, name, status)
	}
	return &domain.Task{ID: 1, Name: name, Status: status}, nil
}

func (m *MockTaskAPI) ListTasks(
	ctx context.Context,
	filter client.ListFilter,
) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, filter)
	}
	return []domain.Task{}, nil
}

func (m *MockTaskAPI) UpdateTask(
	ctx context.Context,
	id int64,
	params client.UpdateParams,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, params)
	}
	return &domain.Task{ID: id}, nil
}

func (m *MockTaskAPI) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return &domain.Task{ID: id}, nil
}

func newTestHandler(t *testing.T, api TaskAPI) http.Handler {
	t.Helper()

	handler, err := NewHandler(api, slog.Default())
	require.NoError(t, err)
	return handler.Routes()
}

func postForm(t *testing.T, router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestShowTasks(t *testing.T) {
	t.Parallel()

	t.Run("renders_fetched_tasks", func(t *testing.T) {
		t.Parallel()

		api := &MockTaskAPI{
			ListTasksFn: func(ctx context.Context, filter client.ListFilter) ([]domain.Task, error) {
				return []domain.Task{
					{ID: 2, Name: "Write report", Status: true},
					{ID: 1, Name: "Buy milk", Status: false},
				}, nil
			},
		}
		router := newTestHandler(t, api)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Buy milk")
		assert.Contains(t, body, "Write report")
	})

	t.Run("passes_filters_to_api", func(t *testing.T) {
		t.Parallel()

		var gotFilter client.ListFilter
		api := &MockTaskAPI{
			ListTasksFn: func(ctx context.Context, filter client.ListFilter) ([]domain.Task, error) {
				gotFilter = filter
				return []domain.Task{}, nil
			},
		}
		router := newTestHandler(t, api)

		req := httptest.NewRequest(http.MethodGet, "/?q=mil&pending=on", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "mil", gotFilter.Name)
		require.NotNil(t, gotFilter.Status)
		assert.False(t, *gotFilter.Status)
	})

	t.Run("fetch_failure_shows_error", func(t *testing.T) {
		t.Parallel()

		api := &MockTaskAPI{
			ListTasksFn: func(ctx context.Context, filter client.ListFilter) ([]domain.Task, error) {
				return nil, assert.AnError
			},
		}
		router := newTestHandler(t, api)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Could not reach the task store")
	})
}

func TestAddTask(t *testing.T) {
	t.Parallel()

	t.Run("success_redirects_with_filters", func(t *testing.T) {
		t.Parallel()

		var gotName string
		var gotStatus bool
		api := &MockTaskAPI{
			CreateTaskFn: func(ctx context.Context, name string, status bool) (*domain.Task, error) {
				gotName = name
				gotStatus = status
				return &domain.Task{ID: 1, Name: name, Status: status}, nil
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks", url.Values{
			"name":    {"  Buy milk  "},
			"status":  {"on"},
			"pending": {"on"},
		})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?pending=on", rec.Header().Get("Location"))
		assert.Equal(t, "Buy milk", gotName, "name is trimmed before sending")
		assert.True(t, gotStatus)
	})

	t.Run("empty_name_rejected_without_api_call", func(t *testing.T) {
		t.Parallel()

		called := false
		api := &MockTaskAPI{
			CreateTaskFn: func(ctx context.Context, name string, status bool) (*domain.Task, error) {
				called = true
				return nil, nil
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks", url.Values{"name": {"   "}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task name cannot be empty")
		assert.False(t, called)
	})

	t.Run("server_error_surfaces_message_verbatim", func(t *testing.T) {
		t.Parallel()

		const serverMessage = "Task name already exists. Enter a task name that doesn't exist."

		api := &MockTaskAPI{
			CreateTaskFn: func(ctx context.Context, name string, status bool) (*domain.Task, error) {
				return nil, &client.APIError{
					StatusCode: http.StatusBadRequest,
					Message:    serverMessage,
				}
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks", url.Values{"name": {"Buy milk"}})

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, serverMessage)
		assert.Contains(t, body, `value="Buy milk"`, "failed submission keeps the typed name")
	})
}

func TestRenameTask(t *testing.T) {
	t.Parallel()

	t.Run("sends_only_name", func(t *testing.T) {
		t.Parallel()

		var gotID int64
		var gotParams client.UpdateParams
		api := &MockTaskAPI{
			UpdateTaskFn: func(ctx context.Context, id int64, params client.UpdateParams) (*domain.Task, error) {
				gotID = id
				gotParams = params
				return &domain.Task{ID: id, Name: *params.Name}, nil
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks/3/rename", url.Values{"name": {"Renamed"}})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, int64(3), gotID)
		require.NotNil(t, gotParams.Name)
		assert.Equal(t, "Renamed", *gotParams.Name)
		assert.Nil(t, gotParams.Status)
	})

	t.Run("empty_name_rejected", func(t *testing.T) {
		t.Parallel()

		router := newTestHandler(t, &MockTaskAPI{})

		rec := postForm(t, router, "/tasks/3/rename", url.Values{"name": {""}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task name cannot be empty")
	})

	t.Run("invalid_id", func(t *testing.T) {
		t.Parallel()

		router := newTestHandler(t, &MockTaskAPI{})

		rec := postForm(t, router, "/tasks/abc/rename", url.Values{"name": {"Renamed"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid task ID")
	})
}

func TestSetTaskStatus(t *testing.T) {
	t.Parallel()

	t.Run("sends_only_status", func(t *testing.T) {
		t.Parallel()

		var gotParams client.UpdateParams
		api := &MockTaskAPI{
			UpdateTaskFn: func(ctx context.Context, id int64, params client.UpdateParams) (*domain.Task, error) {
				gotParams = params
				return &domain.Task{ID: id, Status: *params.Status}, nil
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks/3/status", url.Values{
			"status": {"true"},
			"q":      {"mil"},
		})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/?q=mil", rec.Header().Get("Location"), "filters survive the redirect")
		assert.Nil(t, gotParams.Name)
		require.NotNil(t, gotParams.Status)
		assert.True(t, *gotParams.Status)
	})

	t.Run("malformed_status", func(t *testing.T) {
		t.Parallel()

		router := newTestHandler(t, &MockTaskAPI{})

		rec := postForm(t, router, "/tasks/3/status", url.Values{"status": {"banana"}})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid status value")
	})
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	t.Run("success_redirects", func(t *testing.T) {
		t.Parallel()

		var gotID int64
		api := &MockTaskAPI{
			DeleteTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				gotID = id
				return &domain.Task{ID: id, Name: "Buy milk"}, nil
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks/4/delete", url.Values{})

		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, int64(4), gotID)
	})

	t.Run("missing_task_shows_server_message", func(t *testing.T) {
		t.Parallel()

		api := &MockTaskAPI{
			DeleteTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, &client.APIError{
					StatusCode: http.StatusNotFound,
					Message:    "Task not found",
				}
			},
		}
		router := newTestHandler(t, api)

		rec := postForm(t, router, "/tasks/99/delete", url.Values{})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task not found")
	})
}
