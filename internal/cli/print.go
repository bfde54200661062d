package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/me/taskplan/pkg/model"
)

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-8s  %-16s  %-8s  %s\n", "NAME", "PRIORITY", "DEADLINE", "DURATION", "DEPENDENCIES")
	fmt.Fprintf(w, "%-20s  %-8s  %-16s  %-8s  %s\n", "----", "--------", "--------", "--------", "------------")
	for _, t := range tasks {
		deps := "-"
		if len(t.Dependencies) > 0 {
			deps = strings.Join(t.Dependencies, ",")
		}
		fmt.Fprintf(w, "%-20s  %-8d  %-16s  %-8s  %s\n",
			t.Name, t.Priority, t.Deadline.Format(model.DeadlineLayout), formatHours(t.Duration), deps)
	}
}

func printPlan(w io.Writer, plan model.Plan) {
	if len(plan.Entries) == 0 {
		fmt.Fprintln(w, "Nothing to schedule.")
	} else {
		fmt.Fprintf(w, "%-16s  %-16s  %-20s  %s\n", "START", "END", "TASK", "DEADLINE")
		fmt.Fprintf(w, "%-16s  %-16s  %-20s  %s\n", "-----", "---", "----", "--------")
		for _, e := range plan.Entries {
			fmt.Fprintf(w, "%-16s  %-16s  %-20s  %s\n",
				e.Start.Format(model.DeadlineLayout),
				e.End.Format(model.DeadlineLayout),
				e.Task.Name,
				e.Task.Deadline.Format(model.DeadlineLayout),
			)
		}
	}
	if len(plan.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped (deadline passed): %s\n", strings.Join(plan.Skipped, ", "))
	}
}

func formatHours(d time.Duration) string {
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", int64(d/time.Hour))
	}
	return d.String()
}
