// Package scheduler holds the in-memory task set and turns it into a
// single-worker execution plan.
//
// A Scheduler is not safe for concurrent use; callers sharing one
// instance must serialize access themselves.
package scheduler

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/me/taskplan/pkg/model"
)

// Scheduler owns a set of tasks keyed by name. The dependency graph is
// never stored; it is rebuilt from the task set on every ordering call.
type Scheduler struct {
	tasks map[string]model.Task
	order []string // insertion order of names in tasks

	now    func() time.Time
	loc    *time.Location
	logger *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the source of "now" used as the plan start.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// WithLocation sets the location deadlines are parsed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.loc = loc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger.With("component", "scheduler")
	}
}

// New creates an empty Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		tasks:  make(map[string]model.Task),
		now:    time.Now,
		loc:    time.Local,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates the parameters and stores the task under name. An
// existing task with the same name is replaced in place and keeps its
// position in insertion order.
func (s *Scheduler) Add(name string, priority int, deadline string, durationHours int, deps []string) error {
	task, err := model.NewTask(name, priority, deadline, durationHours, deps, s.loc)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	s.put(task)
	return nil
}

// Put stores an already-built task, with the same overwrite semantics as Add.
func (s *Scheduler) Put(task model.Task) {
	s.put(task.Clone())
}

func (s *Scheduler) put(task model.Task) {
	if _, exists := s.tasks[task.Name]; exists {
		s.logger.Debug("task replaced", "task", task.Name)
	} else {
		s.order = append(s.order, task.Name)
		s.logger.Debug("task added", "task", task.Name)
	}
	s.tasks[task.Name] = task
}

// Delete removes the named task. Missing names are ignored. Tasks that
// depend on the removed one are left untouched.
func (s *Scheduler) Delete(name string) {
	if _, ok := s.tasks[name]; !ok {
		return
	}
	delete(s.tasks, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
	s.logger.Debug("task deleted", "task", name)
}

// Get returns a copy of the named task.
func (s *Scheduler) Get(name string) (model.Task, bool) {
	t, ok := s.tasks[name]
	if !ok {
		return model.Task{}, false
	}
	return t.Clone(), true
}

// Len returns the number of stored tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// List returns a snapshot of all tasks sorted by priority, then deadline.
func (s *Scheduler) List() []model.Task {
	out := s.snapshot()
	slices.SortFunc(out, model.Task.Compare)
	return out
}

// snapshot copies tasks in insertion order.
func (s *Scheduler) snapshot() []model.Task {
	out := make([]model.Task, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.tasks[name].Clone())
	}
	return out
}

// Location returns the location deadlines are parsed in.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}
