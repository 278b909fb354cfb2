package service

import (
	"context"
	"database/sql"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/store"
)

// taskRepositoryAdapter adapts a store.TaskStore to the service-layer
// TaskRepository interface, carrying the base connection so Transact can
// open real database transactions.
type taskRepositoryAdapter struct {
	store store.TaskStore
	db    *sql.DB
}

// NewTaskRepositoryAdapter creates a TaskRepository backed by the given
// store implementation and database connection.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		store: taskStore,
		db:    db,
	}
}

func (a *taskRepositoryAdapter) Create(ctx context.Context, task *domain.Task) error {
	return a.store.Create(ctx, task)
}

func (a *taskRepositoryAdapter) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return a.store.GetByID(ctx, id)
}

func (a *taskRepositoryAdapter) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	return a.store.GetByIDForUpdate(ctx, id)
}

func (a *taskRepositoryAdapter) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	return a.store.List(ctx, filter)
}

func (a *taskRepositoryAdapter) Update(ctx context.Context, task *domain.Task) error {
	return a.store.Update(ctx, task)
}

func (a *taskRepositoryAdapter) Delete(ctx context.Context, id int64) (*domain.Task, error) {
	return a.store.Delete(ctx, id)
}

// Transact implements TaskRepository.Transact on top of
// store.RunInTransaction, handing fn a repository bound to the
// transaction via the store's WithTx.
func (a *taskRepositoryAdapter) Transact(
	ctx context.Context,
	fn func(ctx context.Context, repo TaskRepository) error,
) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		txRepo := &taskRepositoryAdapter{
			store: a.store.WithTx(tx),
			db:    a.db,
		}
		return fn(ctx, txRepo)
	})
}
