package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/ui"
)

func newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"do"},
		Short:   "Complete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := a.svc.CompleteTask(args[0])
			if err != nil {
				return err
			}
			if err := a.saveTask(ctx, t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Completed: %s", ui.IconDone, t.Name)))
			if t.HasReward() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("%s +%d XP, +%d points", ui.IconCoin, t.ExperienceReward, t.PointsReward)))
			}
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Mark a completed task as not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.ResetTask(args[0]); err != nil {
				return err
			}
			t, _ := a.svc.TaskManager().Get(args[0])
			if err := a.saveTask(ctx, t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render("Reset "+args[0]))
			return nil
		},
	}
}

func newVisibilityCmd(use string, visible bool) *cobra.Command {
	short := "Hide a task from the overlay"
	if visible {
		short = "Show a hidden task again"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.svc.SetTaskVisible(args[0], visible); err != nil {
				return err
			}
			t, _ := a.svc.TaskManager().Get(args[0])
			if err := a.saveTask(ctx, t); err != nil {
				return err
			}
			verb := "Hidden"
			if visible {
				verb = "Visible"
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(verb+": "+args[0]))
			return nil
		},
	}
}
