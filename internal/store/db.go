package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql operations the task store needs.
// Both *sql.DB and *sql.Tx satisfy it, so the same store implementation
// can run queries directly against the pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
