package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/taskplan/pkg/model"
)

// cycleMessage is printed when no schedule exists.
const cycleMessage = "Task dependencies contain a cycle. Cannot schedule tasks."

func newScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Compute a schedule on the server, starting now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := client.Plan(cmd.Context())
			if err != nil {
				var apiErr *model.APIError
				if errors.As(err, &apiErr) && apiErr.Code == model.ErrCycleCode {
					fmt.Fprintln(cmd.OutOrStdout(), cycleMessage)
				}
				return fmt.Errorf("schedule: %w", err)
			}
			printPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}
