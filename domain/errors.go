package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced candidate does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects field errors for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Invalid returns a single-field validation error.
func Invalid(field, message string) error {
	return ValidationErrors{{Field: field, Message: message}}
}
