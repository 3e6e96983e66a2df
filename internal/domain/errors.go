package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for mail rendering and delivery.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrRenderFailed     = errors.New("failed to render template")
	ErrSendFailed       = errors.New("failed to send email")
	ErrInvalidInput     = errors.New("invalid input")
)

// ValidationError reports required request fields that were not supplied.
type ValidationError struct {
	Fields []string
}

// NewValidationError returns a ValidationError for fields, or nil when fields is empty.
func NewValidationError(fields []string) *ValidationError {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}
