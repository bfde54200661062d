package scheduler

import (
	"slices"
	"sort"

	"github.com/me/taskplan/pkg/model"
)

// TopologicalOrder returns every task such that each dependency that
// still exists comes before the tasks depending on it. It returns a
// *model.CycleError when no such order exists.
//
// The sort runs Kahn's algorithm over reference counts: a task's degree
// is the number of times other tasks list it as a dependency, so the
// queue starts at the tasks nothing depends on and drains towards the
// roots. The queue is seeded and fed back to front and the drain order
// reversed before returning, so among unconstrained tasks the earlier
// inserted one comes first.
func (s *Scheduler) TopologicalOrder() ([]model.Task, error) {
	degree := make(map[string]int, len(s.tasks))
	for _, name := range s.order {
		degree[name] = 0
	}
	for _, name := range s.order {
		for _, dep := range s.tasks[name].Dependencies {
			if _, ok := degree[dep]; ok {
				degree[dep]++
			}
		}
	}

	var queue []string
	for i := len(s.order) - 1; i >= 0; i-- {
		if name := s.order[i]; degree[name] == 0 {
			queue = append(queue, name)
		}
	}

	drained := make([]model.Task, 0, len(s.tasks))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		task := s.tasks[name]
		drained = append(drained, task.Clone())

		for i := len(task.Dependencies) - 1; i >= 0; i-- {
			dep := task.Dependencies[i]
			if _, ok := degree[dep]; !ok {
				continue // deleted or never added; treated as satisfied
			}
			degree[dep]--
			if degree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(drained) != len(s.tasks) {
		stuck := make(map[string]bool)
		for name, d := range degree {
			if d > 0 {
				stuck[name] = true
			}
		}
		members := s.cycleMembers(stuck)
		s.logger.Debug("dependency cycle", "tasks", members, "unresolved", len(stuck))
		return nil, &model.CycleError{Tasks: members}
	}

	slices.Reverse(drained)
	return drained, nil
}

// cycleMembers narrows the tasks left over by the sort to those on a
// cycle. Leftovers also include plain dependencies of cycle members;
// those are peeled off from the dependency end until every remaining
// task still waits on another remaining task. The result is sorted.
func (s *Scheduler) cycleMembers(stuck map[string]bool) []string {
	pending := make(map[string]int, len(stuck))
	dependents := make(map[string][]string, len(stuck))
	for name := range stuck {
		for _, dep := range s.tasks[name].Dependencies {
			if stuck[dep] {
				pending[name]++
				dependents[dep] = append(dependents[dep], name)
			}
		}
	}

	var queue []string
	for name := range stuck {
		if pending[name] == 0 {
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, d := range dependents[name] {
			pending[d]--
			if pending[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	var members []string
	for name := range stuck {
		if pending[name] > 0 {
			members = append(members, name)
		}
	}
	sort.Strings(members)
	return members
}
