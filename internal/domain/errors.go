package domain

import "errors"

// ErrValidation is the base error all domain validation failures wrap,
// so callers can match the whole category with errors.Is.
var ErrValidation = errors.New("validation failed")
