package root

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/rank"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show hunter rank, totals and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			st := a.svc.Status()
			settings := a.svc.Settings()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconSword, "Hunter Status"))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.Gold.Render(st.HunterRank)))
			if settings.ShowTotalLevel {
				fmt.Fprintln(out, ui.LabelValue("Total Level", st.TotalLevel))
			}
			if settings.ShowTotalExperience {
				fmt.Fprintln(out, ui.LabelValue("Total XP", humanize.Comma(st.TotalXP)))
			}
			fmt.Fprintln(out, ui.LabelValue("Combat Level", st.CombatLevel))
			fmt.Fprintln(out, ui.LabelValue("Power Level", humanize.Comma(int64(st.PowerLevel))))
			fmt.Fprintln(out, ui.LabelValue("Quest Points", fmt.Sprintf("%d (%d quests done)", st.QuestPoints, st.QuestsDone)))
			fmt.Fprintln(out, ui.LabelValue("Next Milestone", st.NextMilestone))
			fmt.Fprintln(out, ui.LabelValue("Play Time", st.PlayTime))
			fmt.Fprintln(out, ui.LabelValue("Tasks", fmt.Sprintf("%d/%d completed, %d visible", st.Tasks.Completed, st.Tasks.Total, st.Tasks.Visible)))
			fmt.Fprintln(out, ui.Separator)

			levels := a.svc.Tracker().Levels()
			if len(levels) > 0 {
				fmt.Fprintln(out, ui.H2.Render("📊 Skills"))
				for _, sk := range skill.Trainable() {
					lvl, ok := levels[sk]
					if !ok {
						continue
					}
					fmt.Fprintf(out, "- %s %-12s %2d\n", sk.Emoji(), sk, lvl)
				}
				fmt.Fprintln(out, "")
			}

			if settings.ShowRecentXPGains && len(st.RecentGains) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Recent gains"))
				for _, g := range st.RecentGains {
					fmt.Fprintf(out, "- %s %s\n", g.Skill, ui.Muted.Render(g.Label+" ago"))
				}
				fmt.Fprintln(out, "")
			}

			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Badges (%d/%d)", ui.IconTrophy, rank.CountEarned(st.Badges), len(st.Badges))))
			for _, b := range st.Badges {
				if b.Earned {
					fmt.Fprintf(out, "- %s %s %s\n", b.Icon, b.Name, ui.Muted.Render(b.Description))
				}
			}

			totals, err := a.store.CompletionRepo().Totals(ctx)
			if err != nil {
				return err
			}
			if totals.Count > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.LabelValue(ui.IconCoin+" Rewards", fmt.Sprintf("%s XP, %s points from %d completions",
					humanize.Comma(totals.XP), humanize.Comma(totals.Points), totals.Count)))
			}
			return nil
		},
	}
}
