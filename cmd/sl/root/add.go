package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		id           string
		description  string
		difficulty   string
		category     string
		source       string
		xp           int
		points       int
		relatedQuest string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := task.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			c, err := task.ParseCategory(category)
			if err != nil {
				return err
			}
			s, err := task.ParseSource(source)
			if err != nil {
				return err
			}
			if xp < 0 || points < 0 {
				return errors.New("rewards cannot be negative")
			}
			if id == "" {
				id = "custom_" + uuid.NewString()[:8]
			}

			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := a.svc.TaskManager().Add(task.Task{
				ID:               id,
				Name:             strings.TrimSpace(args[0]),
				Description:      description,
				Difficulty:       d,
				Category:         c,
				Source:           s,
				Visible:          true,
				ExperienceReward: xp,
				PointsReward:     points,
				RelatedQuest:     relatedQuest,
			})
			if err != nil {
				return err
			}
			if err := a.saveTask(ctx, t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Added %s", ui.IconNew, t.ID)))
			printTask(cmd, t)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Task id (default custom_<random>)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "easy", "Difficulty (name or 1-5)")
	cmd.Flags().StringVarP(&category, "category", "c", "miscellaneous", "Category")
	cmd.Flags().StringVarP(&source, "source", "s", "custom", "Source")
	cmd.Flags().IntVar(&xp, "xp", 0, "Experience reward")
	cmd.Flags().IntVar(&points, "points", 0, "Points reward")
	cmd.Flags().StringVar(&relatedQuest, "quest", "", "Quest whose completion finishes the task")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if !a.svc.TaskManager().Remove(args[0]) {
				return fmt.Errorf("%w: %s", task.ErrNotFound, args[0])
			}
			if err := a.store.DeleteTask(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Removed "+args[0]))
			return nil
		},
	}
}
