package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Code: ErrNotFound, Message: "task 'build' not found"}
	want := "NOT_FOUND: task 'build' not found"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "build")
	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Message != "task 'build' not found" {
		t.Errorf("Message = %q, want %q", err.Message, "task 'build' not found")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("Invalid request",
		FieldError{Field: "deadline", Message: "expected format YYYY-MM-DD HH:MM"},
		FieldError{Field: "duration", Message: "must not be negative"},
	)
	if err.Code != ErrValidation {
		t.Errorf("Code = %q, want %q", err.Code, ErrValidation)
	}
	if len(err.Details) != 2 {
		t.Errorf("Details length = %d, want 2", len(err.Details))
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	_, parseErr := time.Parse(DeadlineLayout, "tomorrow")
	err := fmt.Errorf("add task: %w", &ValidationError{Field: "deadline", Value: "tomorrow", Reason: "bad", Err: parseErr})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("errors.As(%v) = false, want true", err)
	}
	if ve.Field != "deadline" {
		t.Errorf("Field = %q, want deadline", ve.Field)
	}
	if !errors.Is(err, parseErr) {
		t.Error("wrapped parse error not reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), `invalid deadline "tomorrow"`) {
		t.Errorf("Error() = %q, want field and value", err.Error())
	}
}

func TestCycleError(t *testing.T) {
	err := fmt.Errorf("schedule: %w", &CycleError{Tasks: []string{"a", "b"}})
	if !errors.Is(err, ErrCycle) {
		t.Error("errors.Is(err, ErrCycle) = false, want true")
	}
	want := "task dependencies contain a cycle involving tasks: a, b"
	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As(CycleError) = false")
	}
	if got := ce.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (&CycleError{}).Error(); got != ErrCycle.Error() {
		t.Errorf("empty CycleError = %q, want %q", got, ErrCycle.Error())
	}
}
