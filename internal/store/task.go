package store

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard/internal/domain"
)

// TaskFilter restricts the result of a List call.
// The zero value applies no filtering and returns all tasks.
type TaskFilter struct {
	// Name, when non-empty, restricts results to tasks whose name
	// contains it as a case-insensitive substring.
	Name string

	// Status, when non-nil, restricts results to exactly pending
	// (false) or exactly completed (true) tasks.
	Status *bool
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	// It handles domain validation internally.
	// Returns ErrTaskNameExists if the name is already taken.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByIDForUpdate retrieves a task by its unique ID and locks the
	// row until the surrounding transaction ends, so a read-merge-write
	// sequence cannot interleave with a concurrent writer. It must be
	// called on a transaction-bound store (see WithTx).
	// Returns ErrTaskNotFound if the task does not exist.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// List retrieves tasks matching the filter, most recently created
	// first (descending by ID). An empty filter returns all tasks.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update saves changes to an existing task. The caller provides the
	// complete desired state; the ID is never changed.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns ErrTaskNameExists if the new name collides with another task.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID and returns the
	// task as it existed immediately before deletion.
	// Returns ErrTaskNotFound if the task does not exist.
	// This operation is permanent; the ID is not recycled.
	Delete(ctx context.Context, id int64) (*domain.Task, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
