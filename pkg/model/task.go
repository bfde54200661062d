package model

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// DeadlineLayout is the accepted deadline format ("YYYY-MM-DD HH:MM").
const DeadlineLayout = "2006-01-02 15:04"

// MaxDurationHours is the most whole hours a time.Duration can hold.
const MaxDurationHours = int(math.MaxInt64 / int64(time.Hour))

// Task is one unit of work known to a scheduler. Tasks are values; once
// built by NewTask they are not modified, only replaced.
type Task struct {
	Name     string        `json:"name"`
	Priority int           `json:"priority"` // lower runs first
	Deadline time.Time     `json:"deadline"`
	Duration time.Duration `json:"duration"`

	// Dependencies names tasks that must be ordered before this one.
	// Names that do not resolve to a known task are treated as satisfied.
	Dependencies []string `json:"dependencies,omitempty"`

	Status TaskStatus `json:"status"`
}

// NewTask validates raw task parameters and builds a Task.
// The deadline is interpreted in loc; a nil loc means time.Local.
func NewTask(name string, priority int, deadline string, durationHours int, deps []string, loc *time.Location) (Task, error) {
	if strings.TrimSpace(name) == "" {
		return Task{}, &ValidationError{Field: "name", Value: name, Reason: "must not be empty"}
	}
	if strings.Contains(name, "/") {
		return Task{}, &ValidationError{Field: "name", Value: name, Reason: `must not contain "/"`}
	}
	if loc == nil {
		loc = time.Local
	}
	dl, err := time.ParseInLocation(DeadlineLayout, strings.TrimSpace(deadline), loc)
	if err != nil {
		return Task{}, &ValidationError{
			Field:  "deadline",
			Value:  deadline,
			Reason: "expected format YYYY-MM-DD HH:MM",
			Err:    err,
		}
	}
	if durationHours < 0 {
		return Task{}, &ValidationError{Field: "duration", Value: durationHours, Reason: "must not be negative"}
	}
	if durationHours > MaxDurationHours {
		return Task{}, &ValidationError{
			Field:  "duration",
			Value:  durationHours,
			Reason: fmt.Sprintf("must not exceed %d hours", MaxDurationHours),
		}
	}

	return Task{
		Name:         name,
		Priority:     priority,
		Deadline:     dl,
		Duration:     time.Duration(durationHours) * time.Hour,
		Dependencies: slices.Clone(deps),
		Status:       TaskStatusPending,
	}, nil
}

// Less orders tasks by priority, then deadline. Name breaks remaining
// ties so sorted output is stable across runs.
func (t Task) Less(o Task) bool {
	if t.Priority != o.Priority {
		return t.Priority < o.Priority
	}
	if !t.Deadline.Equal(o.Deadline) {
		return t.Deadline.Before(o.Deadline)
	}
	return t.Name < o.Name
}

// Compare is Less in the three-way form expected by slices.SortFunc.
func (t Task) Compare(o Task) int {
	switch {
	case t.Less(o):
		return -1
	case o.Less(t):
		return 1
	}
	return 0
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	t.Dependencies = slices.Clone(t.Dependencies)
	return t
}

// ScheduledTask is one slot of a plan: Task runs in [Start, End).
type ScheduledTask struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Task  Task      `json:"task"`
}
