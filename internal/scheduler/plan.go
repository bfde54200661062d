package scheduler

import (
	"fmt"

	"github.com/me/taskplan/pkg/model"
)

// Schedule assigns start times to tasks in topological order on a single
// worker, starting now. A task whose deadline is already behind the
// cursor is left out; every other task occupies [cursor, cursor+duration)
// and pushes the cursor forward. Priority plays no part here.
func (s *Scheduler) Schedule() ([]model.ScheduledTask, error) {
	plan, err := s.Plan()
	if err != nil {
		return nil, err
	}
	return plan.Entries, nil
}

// Plan is Schedule with the dropped task names and the plan window kept.
func (s *Scheduler) Plan() (model.Plan, error) {
	ordered, err := s.TopologicalOrder()
	if err != nil {
		return model.Plan{}, fmt.Errorf("schedule: %w", err)
	}

	start := s.now()
	plan := model.Plan{
		Entries: make([]model.ScheduledTask, 0, len(ordered)),
		Skipped: []string{},
		Start:   start,
	}

	cursor := start
	for _, task := range ordered {
		if task.Deadline.Before(cursor) {
			s.logger.Debug("task skipped, deadline passed",
				"task", task.Name,
				"deadline", task.Deadline,
				"cursor", cursor,
			)
			plan.Skipped = append(plan.Skipped, task.Name)
			continue
		}
		end := cursor.Add(task.Duration)
		plan.Entries = append(plan.Entries, model.ScheduledTask{Start: cursor, End: end, Task: task})
		cursor = end
	}
	plan.End = cursor

	s.logger.Debug("plan computed",
		"tasks", len(ordered),
		"scheduled", len(plan.Entries),
		"skipped", len(plan.Skipped),
	)
	return plan, nil
}
