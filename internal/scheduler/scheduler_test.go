package scheduler

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/me/taskplan/pkg/model"
)

var t0 = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func newTestScheduler() *Scheduler {
	return New(WithClock(func() time.Time { return t0 }), WithLocation(time.UTC))
}

// in formats a deadline offset from t0.
func in(d time.Duration) string {
	return t0.Add(d).Format(model.DeadlineLayout)
}

func mustAdd(t *testing.T, s *Scheduler, name string, priority int, deadline string, hours int, deps ...string) {
	t.Helper()
	if err := s.Add(name, priority, deadline, hours, deps); err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
}

func names(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Name)
	}
	return out
}

func planNames(entries []model.ScheduledTask) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Task.Name)
	}
	return out
}

func TestAdd_InvalidNotStored(t *testing.T) {
	s := newTestScheduler()
	err := s.Add("a", 1, "not a date", 1, nil)

	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *model.ValidationError", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}

	if err := s.Add("b", 1, in(time.Hour), -2, nil); err == nil {
		t.Error("negative duration accepted")
	}
	if _, ok := s.Get("b"); ok {
		t.Error("task with negative duration was stored")
	}

	// Hours that would overflow time.Duration must not wrap negative.
	if err := s.Add("huge", 1, in(100*time.Hour), model.MaxDurationHours+1, nil); err == nil {
		t.Error("overflowing duration accepted")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestAdd_DuplicateOverwrites(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(10*time.Hour), 1)
	mustAdd(t, s, "b", 1, in(10*time.Hour), 1)
	mustAdd(t, s, "a", 7, in(20*time.Hour), 3, "b")

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	got, ok := s.Get("a")
	if !ok {
		t.Fatal("a missing after overwrite")
	}
	if got.Priority != 7 || got.Duration != 3*time.Hour {
		t.Errorf("a = %+v, want replaced values", got)
	}
	if diff := cmp.Diff([]string{"b"}, got.Dependencies); diff != "" {
		t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
	}

	// The replaced task keeps its original slot in insertion order.
	if diff := cmp.Diff([]string{"a", "b"}, s.order); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(10*time.Hour), 1)
	mustAdd(t, s, "b", 1, in(10*time.Hour), 1)

	s.Delete("a")
	s.Delete("missing")

	if diff := cmp.Diff([]string{"b"}, names(s.List())); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	// Re-adding a deleted name puts it at the end.
	mustAdd(t, s, "a", 1, in(10*time.Hour), 1)
	if diff := cmp.Diff([]string{"b", "a"}, s.order); diff != "" {
		t.Errorf("insertion order mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete_DanglingDependencySatisfied(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(10*time.Hour), 1)
	mustAdd(t, s, "b", 1, in(10*time.Hour), 1, "a")
	mustAdd(t, s, "c", 1, in(10*time.Hour), 1, "b")

	s.Delete("b")

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	c, _ := s.Get("c")
	if diff := cmp.Diff([]string{"b"}, c.Dependencies); diff != "" {
		t.Errorf("delete cascaded into dependents (-want +got):\n%s", diff)
	}
}

func TestList_SortedByPriorityThenDeadline(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "late-low", 3, in(2*time.Hour), 1)
	mustAdd(t, s, "p1-late", 1, in(9*time.Hour), 1)
	mustAdd(t, s, "p2", 2, in(1*time.Hour), 1)
	mustAdd(t, s, "p1-early", 1, in(3*time.Hour), 1)

	want := []string{"p1-early", "p1-late", "p2", "late-low"}
	if diff := cmp.Diff(want, names(s.List())); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestList_Snapshot(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(time.Hour), 1, "x")

	first := s.List()
	first[0].Dependencies[0] = "mutated"
	first[0].Priority = 99

	second := s.List()
	if diff := cmp.Diff(second, s.List()); diff != "" {
		t.Errorf("List not idempotent (-first +second):\n%s", diff)
	}
	if second[0].Priority != 1 || second[0].Dependencies[0] != "x" {
		t.Errorf("caller mutation leaked into scheduler: %+v", second[0])
	}
}

func TestTopologicalOrder_Chain(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "A", 1, in(10*time.Hour), 2)
	mustAdd(t, s, "B", 1, in(10*time.Hour), 2, "A")

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologicalOrder_ChainInsertedBackwards(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "deploy", 1, in(10*time.Hour), 1, "test")
	mustAdd(t, s, "test", 1, in(10*time.Hour), 1, "build")
	mustAdd(t, s, "build", 1, in(10*time.Hour), 1)

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"build", "test", "deploy"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologicalOrder_IndependentKeepInsertionOrder(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "c", 3, in(time.Hour), 1)
	mustAdd(t, s, "a", 1, in(time.Hour), 1)
	mustAdd(t, s, "b", 2, in(time.Hour), 1)

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologicalOrder_Diamond(t *testing.T) {
	// a <- b, a <- c, b <- d, c <- d
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(10*time.Hour), 1)
	mustAdd(t, s, "b", 1, in(10*time.Hour), 1, "a")
	mustAdd(t, s, "c", 1, in(10*time.Hour), 1, "a")
	mustAdd(t, s, "d", 1, in(10*time.Hour), 1, "b", "c")

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologicalOrder_UnknownDependencyIgnored(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(time.Hour), 1, "ghost", "ghost")

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologicalOrder_DuplicateDependency(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(time.Hour), 1)
	mustAdd(t, s, "b", 1, in(time.Hour), 1, "a", "a")

	order, err := s.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names(order)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologicalOrder_Cycles(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, s *Scheduler)
		wantStuck []string
	}{
		{
			name: "two-cycle",
			setup: func(t *testing.T, s *Scheduler) {
				mustAdd(t, s, "A", 1, in(time.Hour), 1, "B")
				mustAdd(t, s, "B", 1, in(time.Hour), 1, "A")
			},
			wantStuck: []string{"A", "B"},
		},
		{
			name: "self-loop",
			setup: func(t *testing.T, s *Scheduler) {
				mustAdd(t, s, "A", 1, in(time.Hour), 1, "A")
			},
			wantStuck: []string{"A"},
		},
		{
			name: "three-cycle with tail",
			setup: func(t *testing.T, s *Scheduler) {
				mustAdd(t, s, "x", 1, in(time.Hour), 1, "y")
				mustAdd(t, s, "y", 1, in(time.Hour), 1, "z")
				mustAdd(t, s, "z", 1, in(time.Hour), 1, "x")
				mustAdd(t, s, "tail", 1, in(time.Hour), 1, "x")
			},
			wantStuck: []string{"x", "y", "z"},
		},
		{
			name: "dependency of a cycle is not reported",
			setup: func(t *testing.T, s *Scheduler) {
				mustAdd(t, s, "leaf", 1, in(time.Hour), 1)
				mustAdd(t, s, "A", 1, in(time.Hour), 1, "B", "leaf")
				mustAdd(t, s, "B", 1, in(time.Hour), 1, "A")
			},
			wantStuck: []string{"A", "B"},
		},
		{
			name: "chain below a cycle is not reported",
			setup: func(t *testing.T, s *Scheduler) {
				mustAdd(t, s, "c", 1, in(time.Hour), 1)
				mustAdd(t, s, "b", 1, in(time.Hour), 1, "c")
				mustAdd(t, s, "x", 1, in(time.Hour), 1, "y", "b")
				mustAdd(t, s, "y", 1, in(time.Hour), 1, "x", "x")
			},
			wantStuck: []string{"x", "y"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler()
			tt.setup(t, s)

			order, err := s.TopologicalOrder()
			if order != nil {
				t.Errorf("order = %v, want nil", names(order))
			}
			var ce *model.CycleError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *model.CycleError", err)
			}
			if diff := cmp.Diff(tt.wantStuck, ce.Tasks); diff != "" {
				t.Errorf("stuck tasks mismatch (-want +got):\n%s", diff)
			}

			entries, err := s.Schedule()
			if !errors.Is(err, model.ErrCycle) {
				t.Errorf("Schedule err = %v, want ErrCycle", err)
			}
			if entries != nil {
				t.Errorf("Schedule returned partial plan: %v", planNames(entries))
			}
		})
	}
}

func TestTopologicalOrder_RandomDAGs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		s := newTestScheduler()
		n := 1 + rng.Intn(25)

		// Dependencies only point at lower indices, so the graph is acyclic.
		deps := make([][]string, n)
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				if rng.Intn(4) == 0 {
					deps[i] = append(deps[i], fmt.Sprintf("t%d", j))
				}
			}
		}
		for _, i := range rng.Perm(n) {
			mustAdd(t, s, fmt.Sprintf("t%d", i), rng.Intn(5), in(time.Duration(rng.Intn(48))*time.Hour), rng.Intn(3), deps[i]...)
		}

		order, err := s.TopologicalOrder()
		if err != nil {
			t.Fatalf("round %d: TopologicalOrder: %v", round, err)
		}
		if len(order) != n {
			t.Fatalf("round %d: len(order) = %d, want %d", round, len(order), n)
		}

		pos := make(map[string]int, n)
		for i, task := range order {
			if _, dup := pos[task.Name]; dup {
				t.Fatalf("round %d: %s appears twice", round, task.Name)
			}
			pos[task.Name] = i
		}
		for _, task := range order {
			for _, dep := range task.Dependencies {
				if pos[dep] >= pos[task.Name] {
					t.Errorf("round %d: dependency %s at %d not before %s at %d", round, dep, pos[dep], task.Name, pos[task.Name])
				}
			}
		}

		again, err := s.TopologicalOrder()
		if err != nil {
			t.Fatalf("round %d: second TopologicalOrder: %v", round, err)
		}
		if diff := cmp.Diff(names(order), names(again)); diff != "" {
			t.Errorf("round %d: order not idempotent (-first +second):\n%s", round, diff)
		}
	}
}

func TestSchedule_Chain(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "A", 1, in(10*time.Hour), 2)
	mustAdd(t, s, "B", 1, in(10*time.Hour), 2, "A")

	entries, err := s.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Task.Name != "A" || !entries[0].Start.Equal(t0) {
		t.Errorf("entries[0] = %s@%v, want A@%v", entries[0].Task.Name, entries[0].Start, t0)
	}
	if entries[1].Task.Name != "B" || !entries[1].Start.Equal(t0.Add(2*time.Hour)) {
		t.Errorf("entries[1] = %s@%v, want B@%v", entries[1].Task.Name, entries[1].Start, t0.Add(2*time.Hour))
	}
	if !entries[1].End.Equal(t0.Add(4 * time.Hour)) {
		t.Errorf("entries[1].End = %v, want %v", entries[1].End, t0.Add(4*time.Hour))
	}
}

func TestSchedule_PastDeadlineSkipped(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "A", 1, in(-time.Hour), 1)

	entries, err := s.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", planNames(entries))
	}
}

func TestSchedule_CursorPushesPastDeadline(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "long", 1, in(10*time.Hour), 5)
	mustAdd(t, s, "urgent", 0, in(3*time.Hour), 1) // behind the cursor once long runs
	mustAdd(t, s, "edge", 2, in(5*time.Hour), 1)   // deadline equals the cursor
	mustAdd(t, s, "after", 2, in(8*time.Hour), 1)

	plan, err := s.Plan()
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if diff := cmp.Diff([]string{"long", "edge", "after"}, planNames(plan.Entries)); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"urgent"}, plan.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if !plan.Start.Equal(t0) || !plan.End.Equal(t0.Add(7*time.Hour)) {
		t.Errorf("window = [%v, %v), want [%v, %v)", plan.Start, plan.End, t0, t0.Add(7*time.Hour))
	}

	for _, e := range plan.Entries {
		if e.Task.Deadline.Before(e.Start) {
			t.Errorf("%s starts at %v after its deadline %v", e.Task.Name, e.Start, e.Task.Deadline)
		}
	}
}

func TestSchedule_TopologyNotPriority(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "low", 9, in(10*time.Hour), 1)
	mustAdd(t, s, "high", 1, in(10*time.Hour), 1, "low")
	mustAdd(t, s, "mid", 5, in(10*time.Hour), 1)

	entries, err := s.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	got := planNames(entries)
	if diff := cmp.Diff([]string{"low", "high", "mid"}, got); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}

	// A priority sort would give a different sequence.
	byPriority := names(s.List())
	if slices.Equal(got, byPriority) {
		t.Errorf("plan %v follows priority order %v", got, byPriority)
	}
}

func TestSchedule_LeavesStatusPending(t *testing.T) {
	s := newTestScheduler()
	mustAdd(t, s, "a", 1, in(time.Hour), 1)

	if _, err := s.Schedule(); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	task, _ := s.Get("a")
	if task.Status != model.TaskStatusPending {
		t.Errorf("Status = %q, want PENDING", task.Status)
	}
}

func TestSchedule_Empty(t *testing.T) {
	s := newTestScheduler()
	entries, err := s.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", entries)
	}
}

func TestSchedule_UsesClockPerCall(t *testing.T) {
	now := t0
	s := New(WithClock(func() time.Time { return now }), WithLocation(time.UTC))
	mustAdd(t, s, "a", 1, in(2*time.Hour), 1)

	entries, err := s.Schedule()
	if err != nil || len(entries) != 1 {
		t.Fatalf("Schedule at t0 = %v, %v; want one entry", entries, err)
	}

	now = t0.Add(3 * time.Hour)
	entries, err = s.Schedule()
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries after deadline = %v, want empty", planNames(entries))
	}
}
