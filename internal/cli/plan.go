package cli

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/internal/taskfile"
	"github.com/me/taskplan/pkg/model"
)

func newPlanCmd() *cobra.Command {
	var (
		now      string
		timezone string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "plan FILE",
		Short: "Compute a schedule from a YAML task file without a server",
		Long: `Load tasks from a YAML task file and print the single-worker schedule.

With --watch the file is re-read and the schedule printed again every
time it changes, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			if timezone != "" {
				l, err := time.LoadLocation(timezone)
				if err != nil {
					return fmt.Errorf("timezone: %w", err)
				}
				loc = l
			}

			clock := time.Now
			if now != "" {
				start, err := time.ParseInLocation(model.DeadlineLayout, now, loc)
				if err != nil {
					return fmt.Errorf("--now: expected YYYY-MM-DD HH:MM: %w", err)
				}
				clock = func() time.Time { return start }
			}

			path := args[0]
			out := cmd.OutOrStdout()
			if err := planFile(out, path, loc, clock); err != nil {
				if !watch {
					return err
				}
				logger.Error("plan failed", "file", path, "error", err)
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			logger.Info("watching task file", "file", path)
			return taskfile.Watch(ctx, path, taskfile.DefaultDebounce, logger, func() {
				fmt.Fprintln(out)
				if err := planFile(out, path, loc, clock); err != nil {
					logger.Error("plan failed", "file", path, "error", err)
				}
			})
		},
	}

	cmd.Flags().StringVar(&now, "now", "", `Plan start "YYYY-MM-DD HH:MM" (default: current time)`)
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for deadlines (default: local)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-plan whenever the file changes")

	return cmd
}

// planFile loads path into a fresh scheduler and prints its plan.
func planFile(w io.Writer, path string, loc *time.Location, clock func() time.Time) error {
	f, err := taskfile.Load(path)
	if err != nil {
		return err
	}

	s := scheduler.New(scheduler.WithClock(clock), scheduler.WithLocation(loc), scheduler.WithLogger(logger))
	if err := f.Apply(s); err != nil {
		return err
	}

	plan, err := s.Plan()
	if errors.Is(err, model.ErrCycle) {
		fmt.Fprintln(w, cycleMessage)
		return err
	}
	if err != nil {
		return err
	}
	printPlan(w, plan)
	return nil
}
