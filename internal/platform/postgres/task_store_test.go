package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique_violation",
			err: &pgconn.PgError{
				Code:           "23505",
				ConstraintName: "tasks_name_key",
			},
			want: true,
		},
		{
			name: "wrapped_unique_violation",
			err: fmt.Errorf("insert failed: %w", &pgconn.PgError{
				Code: "23505",
			}),
			want: true,
		},
		{
			name: "other_postgres_error",
			err:  &pgconn.PgError{Code: "23502"}, // not-null violation
			want: false,
		},
		{
			name: "non_postgres_error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, isUniqueViolation(tc.err))
		})
	}
}

func TestNewPostgresTaskStore(t *testing.T) {
	t.Parallel()

	t.Run("nil_db_panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			NewPostgresTaskStore(nil, nil)
		})
	})
}
