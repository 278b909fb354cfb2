package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "service_not_found", err: service.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "store_not_found", err: store.ErrTaskNotFound, want: http.StatusNotFound},
		{name: "duplicate_name", err: service.ErrDuplicateTaskName, want: http.StatusBadRequest},
		{name: "store_duplicate", err: store.ErrTaskNameExists, want: http.StatusBadRequest},
		{name: "no_update_fields", err: service.ErrNoUpdateFields, want: http.StatusBadRequest},
		{name: "empty_name", err: domain.ErrEmptyTaskName, want: http.StatusBadRequest},
		{name: "name_too_long", err: domain.ErrTaskNameTooLong, want: http.StatusBadRequest},
		{name: "base_validation", err: domain.ErrValidation, want: http.StatusBadRequest},
		{name: "invalid_entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "unknown_error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{
			name: "wrapped_not_found",
			err:  fmt.Errorf("delete failed: %w", service.ErrTaskNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "wrapped_duplicate_from_store",
			err:  fmt.Errorf("rename failed: %w", store.ErrTaskNameExists),
			want: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil_error", err: nil, want: "An unexpected error occurred"},
		{name: "not_found", err: service.ErrTaskNotFound, want: "Task not found"},
		{
			name: "duplicate_name",
			err:  service.ErrDuplicateTaskName,
			want: "Task name already exists. Enter a task name that doesn't exist.",
		},
		{
			name: "no_update_fields",
			err:  service.ErrNoUpdateFields,
			want: "Must provide name or status to update",
		},
		{
			name: "empty_name",
			err:  domain.ErrEmptyTaskName,
			want: "Task name must be between 1 and 100 characters",
		},
		{
			name: "name_too_long",
			err:  domain.ErrTaskNameTooLong,
			want: "Task name must be between 1 and 100 characters",
		},
		{name: "invalid_entity", err: store.ErrInvalidEntity, want: "Invalid task data"},
		{
			name: "internal_details_never_leak",
			err:  errors.New("pq: connection refused at 10.0.0.5:5432"),
			want: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "required_tag",
			err: errors.New(
				"Key: 'CreateTaskRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"),
			want: "Invalid Name: required field",
		},
		{
			name: "max_tag",
			err: errors.New(
				"Key: 'UpdateTaskRequest.Name' Error:Field validation for 'Name' failed on the 'max' tag"),
			want: "Invalid Name: too long",
		},
		{
			name: "unrecognized_format",
			err:  errors.New("something went wrong"),
			want: "Validation error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, SanitizeValidationError(tc.err))
		})
	}
}
