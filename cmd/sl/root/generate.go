package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/task"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newGenerateCmd() *cobra.Command {
	var (
		skillName string
		level     int
		count     int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random or skill-scaled challenges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be >= 1")
			}
			var sk skill.Skill
			if skillName != "" {
				var err error
				if sk, err = skill.Parse(skillName); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			for range count {
				var t task.Task
				switch {
				case sk != "" && level > 0:
					t, err = a.svc.GeneratePersonalizedAt(sk, level)
				case sk != "":
					t, err = a.svc.GeneratePersonalized(sk)
				default:
					t, err = a.svc.GenerateRandom()
				}
				if err != nil {
					return err
				}
				if err := a.saveTask(ctx, t); err != nil {
					return err
				}
				printTask(cmd, t)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%d task(s) generated", count)))
			return nil
		},
	}

	cmd.Flags().StringVar(&skillName, "skill", "", "Scale a skilling task to this skill")
	cmd.Flags().IntVar(&level, "level", 0, "Scale to this level instead of the tracked one")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "How many tasks")
	return cmd
}
