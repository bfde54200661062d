package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/taskplan/pkg/model"
)

func newAddCmd() *cobra.Command {
	var (
		priority int
		deadline string
		duration int
		deps     []string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add or replace a task",
		Long: `Add a task, or replace the task with the same name.

Dependencies may name tasks that do not exist yet; unknown names are
treated as already satisfied when ordering.`,
		Example: `  taskplan add build --priority 1 --deadline "2026-10-18 17:00" --duration 2 --deps fetch,lint`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := client.AddTask(cmd.Context(), model.AddTaskRequest{
				Name:          args[0],
				Priority:      priority,
				Deadline:      deadline,
				DurationHours: duration,
				Dependencies:  trimDeps(deps),
			})
			if err != nil {
				return fmt.Errorf("add task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s stored (priority %d, deadline %s, %s)\n",
				task.Name, task.Priority, task.Deadline.Format(model.DeadlineLayout), formatHours(task.Duration))
			return nil
		},
	}

	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority; lower runs first")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", `Deadline "YYYY-MM-DD HH:MM"`)
	cmd.Flags().IntVar(&duration, "duration", 1, "Duration in whole hours")
	cmd.Flags().StringSliceVar(&deps, "deps", nil, "Comma-separated dependency names")
	cmd.MarkFlagRequired("deadline")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a task (no error if it does not exist)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.DeleteTask(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s deleted\n", args[0])
			return nil
		},
	}
}

func trimDeps(deps []string) []string {
	var out []string
	for _, d := range deps {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
