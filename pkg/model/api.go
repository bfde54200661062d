package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds count metadata for list endpoints. Lists are never
// truncated, so HasMore is always false today.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// AddTaskRequest is the body of POST /api/v1/tasks.
type AddTaskRequest struct {
	Name          string   `json:"name"`
	Priority      int      `json:"priority"`
	Deadline      string   `json:"deadline"`
	DurationHours int      `json:"duration_hours"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// Plan is a computed schedule: Entries run back to back from Start to
// End on a single worker. Skipped names the tasks dropped because their
// deadline was already behind the cursor, in topological order.
type Plan struct {
	Entries []ScheduledTask `json:"entries"`
	Skipped []string        `json:"skipped"`
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
}
