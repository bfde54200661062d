package scheduler

import (
	"sync"

	"github.com/me/taskplan/pkg/model"
)

// Shared serializes access to one Scheduler for concurrent callers such
// as HTTP handlers. Every method holds the lock for the whole call.
type Shared struct {
	mu sync.Mutex
	s  *Scheduler
}

// NewShared wraps s. s must not be used directly afterwards.
func NewShared(s *Scheduler) *Shared {
	return &Shared{s: s}
}

// Do runs fn with exclusive access to the scheduler.
func (sh *Shared) Do(fn func(*Scheduler) error) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return fn(sh.s)
}

// Add calls Scheduler.Add under the lock.
func (sh *Shared) Add(name string, priority int, deadline string, durationHours int, deps []string) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.Add(name, priority, deadline, durationHours, deps)
}

// Delete calls Scheduler.Delete under the lock.
func (sh *Shared) Delete(name string) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.s.Delete(name)
}

// Get returns a copy of the named task.
func (sh *Shared) Get(name string) (model.Task, bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.Get(name)
}

// Len returns the number of stored tasks.
func (sh *Shared) Len() int {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.Len()
}

// List returns tasks sorted by priority, then deadline.
func (sh *Shared) List() []model.Task {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.List()
}

// TopologicalOrder calls Scheduler.TopologicalOrder under the lock.
func (sh *Shared) TopologicalOrder() ([]model.Task, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.TopologicalOrder()
}

// Plan computes a plan starting at the scheduler's current clock.
func (sh *Shared) Plan() (model.Plan, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.s.Plan()
}
