package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors. Duplicate names are reported as 400 alongside
	// validation failures; both are client-correctable input problems.
	case errors.Is(err, service.ErrDuplicateTaskName),
		errors.Is(err, store.ErrTaskNameExists),
		errors.Is(err, service.ErrNoUpdateFields),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrDuplicateTaskName),
		errors.Is(err, store.ErrTaskNameExists):
		return "Task name already exists. Enter a task name that doesn't exist."

	case errors.Is(err, service.ErrNoUpdateFields):
		return "Must provide name or status to update"

	case errors.Is(err, domain.ErrEmptyTaskName),
		errors.Is(err, domain.ErrTaskNameTooLong):
		return "Task name must be between 1 and 100 characters"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CreateTaskRequest.Name' Error:Field validation
	// for 'Name' failed on the 'max' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
