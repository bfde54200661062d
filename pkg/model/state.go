package model

// TaskStatus represents the lifecycle status of a Task.
//
// The scheduler never writes it; planning a task does not move it out of
// PENDING. The transition table exists for executors built on top.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusScheduled TaskStatus = "SCHEDULED"
	TaskStatusRunning   TaskStatus = "RUNNING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusSkipped   TaskStatus = "SKIPPED"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the task is in a final status.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusSkipped:
		return true
	}
	return false
}

// ValidTaskTransitions defines the allowed status transitions for Tasks.
var ValidTaskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:   {TaskStatusScheduled, TaskStatusSkipped},
	TaskStatusScheduled: {TaskStatusRunning, TaskStatusSkipped},
	TaskStatusRunning:   {TaskStatusCompleted},
}

// CanTransitionTo returns true if moving from the current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range ValidTaskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
