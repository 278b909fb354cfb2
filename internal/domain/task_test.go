package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/taskboard/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("valid_task", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("Buy milk", false)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Name)
		assert.False(t, task.Status)
		assert.Zero(t, task.ID, "ID should be unset until the store assigns it")
	})

	t.Run("completed_on_creation", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("Write report", true)
		require.NoError(t, err)
		assert.True(t, task.Status)
	})

	t.Run("empty_name", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask("", false)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskName)
		assert.Nil(t, task)
	})

	t.Run("name_too_long", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(strings.Repeat("a", 101), false)
		assert.ErrorIs(t, err, domain.ErrTaskNameTooLong)
		assert.Nil(t, task)
	})
}

func TestValidateTaskName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "single_character", input: "a", wantErr: nil},
		{name: "max_length", input: strings.Repeat("a", 100), wantErr: nil},
		{name: "empty", input: "", wantErr: domain.ErrEmptyTaskName},
		{name: "over_max_length", input: strings.Repeat("a", 101), wantErr: domain.ErrTaskNameTooLong},
		{
			name: "multibyte_runes_counted_as_characters",
			// 100 multibyte characters is within bounds even though the
			// byte length exceeds 100
			input:   strings.Repeat("ü", 100),
			wantErr: nil,
		},
		{
			name:    "multibyte_runes_over_limit",
			input:   strings.Repeat("ü", 101),
			wantErr: domain.ErrTaskNameTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := domain.ValidateTaskName(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
