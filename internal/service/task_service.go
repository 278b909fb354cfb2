// Package service implements the business rules of the task store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

// TaskRepository defines the repository interface for the service layer.
// This is aligned with store.TaskStore to ensure proper separation of concerns.
type TaskRepository interface {
	// Create saves a new task to the store and assigns its ID
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByIDForUpdate retrieves a task by its unique ID and locks the
	// row for the rest of the transaction. Only meaningful on the
	// transaction-bound repository handed to a Transact callback.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves tasks matching the filter, descending by ID
	List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// Update writes the complete desired state of an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task and returns its final state
	Delete(ctx context.Context, id int64) (*domain.Task, error)

	// Transact runs fn against a repository bound to a single database
	// transaction. The transaction commits if fn returns nil and rolls
	// back otherwise, so a failed mutation leaves the table unchanged.
	Transact(ctx context.Context, fn func(ctx context.Context, repo TaskRepository) error) error
}

// UpdateTaskParams carries the fields of a partial update.
// Nil fields are left unchanged; at least one must be non-nil.
type UpdateTaskParams struct {
	Name   *string
	Status *bool
}

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask creates a new task with the given name and status.
	// The name must be unique and within length bounds.
	CreateTask(ctx context.Context, name string, status bool) (*domain.Task, error)

	// ListTasks retrieves tasks matching the filter, most recently
	// created first. An empty filter returns all tasks.
	ListTasks(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// UpdateTask applies a partial update to an existing task and
	// returns the updated task.
	UpdateTask(ctx context.Context, id int64, params UpdateTaskParams) (*domain.Task, error)

	// DeleteTask removes a task and returns it as it existed
	// immediately before deletion.
	DeleteTask(ctx context.Context, id int64) (*domain.Task, error)
}

// Common sentinel errors for TaskService
var (
	// ErrTaskNotFound indicates that the task does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrDuplicateTaskName indicates that another task already has the
	// requested name
	ErrDuplicateTaskName = errors.New("task name already exists")

	// ErrNoUpdateFields indicates that a partial update supplied
	// neither a name nor a status
	ErrNoUpdateFields = errors.New("must provide name or status to update")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "update_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It maps store-level sentinel errors to their service-level equivalents
// and returns sentinels directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Service-defined sentinel errors pass through untouched
	if errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrDuplicateTaskName) ||
		errors.Is(err, ErrNoUpdateFields) {
		return err
	}

	// Store-level sentinels map to service-level ones
	if store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}
	if store.IsDuplicateError(err) {
		return ErrDuplicateTaskName
	}

	// Domain validation errors pass through so callers can map them to
	// client-correctable responses
	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(taskRepo TaskRepository, logger *slog.Logger) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}
	if logger == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "logger cannot be nil",
		}
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	name string,
	status bool,
) (*domain.Task, error) {
	task, err := domain.NewTask(name, status)
	if err != nil {
		s.logger.Debug("rejected invalid task name on create",
			slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "invalid task name", err)
	}

	// The unique constraint on the name column is the authoritative
	// duplicate check; a pre-read here would race with concurrent creators.
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	s.logger.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.Bool("status", task.Status))
	return task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
// The read-merge-write sequence runs inside a single transaction and the
// read locks the row, so two concurrent partial updates cannot overwrite
// each other's fields and a failed write leaves the row unchanged.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	params UpdateTaskParams,
) (*domain.Task, error) {
	if params.Name == nil && params.Status == nil {
		return nil, ErrNoUpdateFields
	}

	if params.Name != nil {
		if err := domain.ValidateTaskName(*params.Name); err != nil {
			s.logger.Debug("rejected invalid task name on update",
				slog.Int64("task_id", id),
				slog.String("error", err.Error()))
			return nil, NewTaskServiceError("update_task", "invalid task name", err)
		}
	}

	var updated *domain.Task
	err := s.taskRepo.Transact(ctx, func(ctx context.Context, repo TaskRepository) error {
		task, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if params.Name != nil {
			task.Name = *params.Name
		}
		if params.Status != nil {
			task.Status = *params.Status
		}

		if err := repo.Update(ctx, task); err != nil {
			return err
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	s.logger.Debug("task updated",
		slog.Int64("task_id", updated.ID),
		slog.Bool("status", updated.Status))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Debug("task deleted", slog.Int64("task_id", id))
	return task, nil
}
