// Package client provides a typed HTTP client for the Task Store API.
// It is consumed by the web GUI, which holds no business logic of its own
// and re-fetches the task list from the store after every mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/domain"
)

// APIError is returned when the store responds with a non-success status.
// Message carries the server's error text verbatim so the GUI can surface
// it to the user unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// ListFilter restricts a List call. The zero value returns all tasks.
type ListFilter struct {
	// Name filters by case-insensitive substring when non-empty.
	Name string
	// Status filters to exactly pending (false) or completed (true) when non-nil.
	Status *bool
}

// UpdateParams carries the fields of a partial update; nil fields are
// left unchanged by the store.
type UpdateParams struct {
	Name   *string `json:"name,omitempty"`
	Status *bool   `json:"status,omitempty"`
}

// Client talks to the Task Store API over HTTP+JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client for the API at the given base URL.
// If logger is nil, a default logger is used.
func New(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With(slog.String("component", "task_client")),
	}
}

// CreateTask creates a new task and returns it with its assigned ID.
func (c *Client) CreateTask(ctx context.Context, name string, status bool) (*domain.Task, error) {
	body := struct {
		Name   string `json:"name"`
		Status bool   `json:"status"`
	}{Name: name, Status: status}

	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, http.StatusCreated, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks retrieves tasks matching the filter, most recently created first.
func (c *Client) ListTasks(ctx context.Context, filter ListFilter) ([]domain.Task, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Status != nil {
		query.Set("status", strconv.FormatBool(*filter.Status))
	}

	path := "/tasks"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask retrieves a single task by ID.
func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int64, params UpdateParams) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d", id), params, http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task and returns its state before deletion.
func (c *Client) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, http.StatusOK, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// do issues one request and decodes either the success body into out or
// the server's error body into an APIError.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	body any,
	wantStatus int,
	out any,
) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("request to task store failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	if resp.StatusCode != wantStatus {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-success response into an APIError, preserving
// the server's message verbatim when the body is well-formed.
func (c *Client) decodeError(resp *http.Response) error {
	var errBody struct {
		Error string `json:"error"`
	}

	message := fmt.Sprintf("unexpected status %d", resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
		message = errBody.Error
	}

	c.logger.Debug("task store returned an error",
		slog.Int("status_code", resp.StatusCode),
		slog.String("message", message))

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
