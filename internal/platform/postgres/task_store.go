package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/platform/logger"
	"github.com/taskboard/taskboard/internal/store"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// isUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
// The unique constraint on the task name column is the authoritative duplicate
// signal; there is no application-level pre-check that could race.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}

// WithTx returns a new PostgresTaskStore that runs its statements on the
// provided transaction instead of the base connection.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It inserts a new task row and assigns the generated ID to the task.
// Returns store.ErrTaskNameExists if the name is already taken.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (name, status)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, task.Name, task.Status).Scan(&task.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate task name on create",
				slog.String("name", task.Name))
			return store.ErrTaskNameExists
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("name", task.Name))
		return store.NewStoreError("task", "create", "failed to insert row", err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.Bool("status", task.Status))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, name, status
		FROM tasks
		WHERE id = $1
	`
	return s.getTask(ctx, query, id)
}

// GetByIDForUpdate implements store.TaskStore.GetByIDForUpdate
// FOR UPDATE holds a row lock until the surrounding transaction ends, so
// a concurrent writer cannot slip between the read and the later write.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, name, status
		FROM tasks
		WHERE id = $1
		FOR UPDATE
	`
	return s.getTask(ctx, query, id)
}

// getTask runs a single-row task query and maps sql.ErrNoRows to
// store.ErrTaskNotFound.
func (s *PostgresTaskStore) getTask(ctx context.Context, query string, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Name,
		&task.Status,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "failed to query row", err)
	}

	return &task, nil
}

// List implements store.TaskStore.List
// It retrieves tasks matching the filter, ordered most recently created
// first (descending by ID). The name filter is a case-insensitive
// substring match; the status filter is an exact match.
// Returns an empty slice if no tasks match.
func (s *PostgresTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// All conditions are parameterized; filter values never reach the
	// query text directly.
	query := `
		SELECT id, name, status
		FROM tasks
		WHERE 1=1
	`
	var args []any

	if filter.Name != "" {
		args = append(args, filter.Name)
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", len(args))
	}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	query += " ORDER BY id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to query rows", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.Name, &task.Status); err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update
// It writes the complete desired state of an existing task.
// Returns store.ErrTaskNotFound if the task does not exist.
// Returns store.ErrTaskNameExists if the new name collides with another task.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET name = $1, status = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, task.Name, task.Status, task.ID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("duplicate task name on update",
				slog.Int64("task_id", task.ID),
				slog.String("name", task.Name))
			return store.ErrTaskNameExists
		}

		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", "failed to update row", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("task not found for update",
			slog.Int64("task_id", task.ID))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.Bool("status", task.Status))
	return nil
}

// Delete implements store.TaskStore.Delete
// It removes a task row and returns the row's final state.
// The single DELETE ... RETURNING statement makes the read-then-delete
// sequence atomic without an explicit transaction.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING id, name, status
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.Name,
		&task.Status,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "delete", "failed to delete row", err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return &task, nil
}
