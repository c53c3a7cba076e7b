package root

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newTasksCmd() *cobra.Command {
	var (
		all        bool
		asJSON     bool
		category   string
		difficulty string
		source     string
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks (the overlay view by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var list []task.Task
			if all {
				list = a.svc.TaskManager().All()
			} else {
				list = a.svc.Tasks()
			}

			if category != "" {
				c, err := task.ParseCategory(category)
				if err != nil {
					return err
				}
				list = keep(list, func(t task.Task) bool { return t.Category == c })
			}
			if difficulty != "" {
				d, err := task.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				list = keep(list, func(t task.Task) bool { return t.Difficulty == d })
			}
			if source != "" {
				s, err := task.ParseSource(source)
				if err != nil {
					return err
				}
				list = keep(list, func(t task.Task) bool { return t.Source == s })
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			title := "Active Tasks"
			if all {
				title = "All Tasks"
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTask, title))
			if len(list) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(none)"))
				return nil
			}
			for _, t := range list {
				printTask(cmd, t)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed and hidden tasks, skip the display filter")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "Only this difficulty (name or 1-5)")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Only this source")
	return cmd
}

func keep(in []task.Task, fn func(task.Task) bool) []task.Task {
	out := in[:0:0]
	for _, t := range in {
		if fn(t) {
			out = append(out, t)
		}
	}
	return out
}

func printTask(cmd *cobra.Command, t task.Task) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s [%s] %s %s\n", ui.TaskIcon(t), t.Name, ui.Difficulty(t.Difficulty), ui.TaskState(t), ui.Muted.Render(t.ID))
	detail := fmt.Sprintf("   %s · %s", t.Category.DisplayName(), t.Source.DisplayName())
	if t.HasReward() {
		detail += fmt.Sprintf(" · %s XP, %s pts", humanize.Comma(int64(t.ExperienceReward)), humanize.Comma(int64(t.PointsReward)))
	}
	if t.RelatedQuest != "" {
		detail += " · quest: " + t.RelatedQuest
	}
	fmt.Fprintln(out, ui.Muted.Render(detail))
	if t.Description != "" {
		fmt.Fprintln(out, "   "+t.Description)
	}
}
