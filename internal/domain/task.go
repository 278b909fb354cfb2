// Package domain defines the core business entities and errors.
package domain

import (
	"fmt"
	"unicode/utf8"
)

// Name length bounds for a task, in characters.
const (
	TaskNameMinLength = 1
	TaskNameMaxLength = 100
)

// Common validation errors for Task
var (
	ErrEmptyTaskName   = fmt.Errorf("%w: task name cannot be empty", ErrValidation)
	ErrTaskNameTooLong = fmt.Errorf("%w: task name cannot exceed 100 characters", ErrValidation)
)

// Task represents a single unit of work tracked by the system.
// Status is false while the task is pending and true once completed.
// The ID is assigned by the store on creation and never changes or
// gets reused afterwards.
type Task struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// NewTask creates a new Task with the given name and status.
// The ID is left zero; the store assigns it on insert.
// Returns an error if validation fails.
func NewTask(name string, status bool) (*Task, error) {
	task := &Task{
		Name:   name,
		Status: status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	return ValidateTaskName(t.Name)
}

// ValidateTaskName checks that a task name is within the allowed
// length bounds. Length is measured in characters, not bytes, to
// match the VARCHAR(100) column definition.
func ValidateTaskName(name string) error {
	length := utf8.RuneCountInString(name)

	if length < TaskNameMinLength {
		return ErrEmptyTaskName
	}

	if length > TaskNameMaxLength {
		return ErrTaskNameTooLong
	}

	return nil
}
