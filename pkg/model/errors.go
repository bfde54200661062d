package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation  ErrorCode = "VALIDATION_ERROR"
	ErrNotFound    ErrorCode = "NOT_FOUND"
	ErrCycleCode   ErrorCode = "CYCLE"
	ErrRateLimited ErrorCode = "RATE_LIMITED"
	ErrInternal    ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the API.
type APIError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// FieldError describes a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewValidationError creates an APIError with validation details.
func NewValidationError(msg string, details ...FieldError) *APIError {
	return &APIError{Code: ErrValidation, Message: msg, Details: details}
}

// NewNotFoundError creates a NOT_FOUND APIError.
func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// ValidationError is returned when task parameters cannot form a Task.
// The task is not stored.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ErrCycle is matched by every CycleError via errors.Is.
var ErrCycle = errors.New("task dependencies contain a cycle")

// CycleError reports that no topological order exists. Tasks lists the
// tasks that lie on a cycle, sorted.
type CycleError struct {
	Tasks []string
}

func (e *CycleError) Error() string {
	if len(e.Tasks) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s involving tasks: %s", ErrCycle, strings.Join(e.Tasks, ", "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
