package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/hiscore"
	"github.com/resolve109/solo-leveling/internal/rank"
	"github.com/resolve109/solo-leveling/internal/skill"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newHiscoresCmd() *cobra.Command {
	var track bool

	cmd := &cobra.Command{
		Use:   "hiscores <player>",
		Short: "Look up a player's hiscores",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("player name is required")
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

			stats, err := a.hiscores().Lookup(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			settings := a.svc.Settings()

			fmt.Fprintln(out, ui.Heading(ui.IconSearch, "Hiscores: "+stats.Player))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.Gold.Render(rank.HunterRank(stats.Overall.Level, settings.UseCustomRank, settings.HunterTitle))))
			fmt.Fprintln(out, ui.LabelValue("Overall", fmt.Sprintf("level %d, %s XP, rank %s",
				stats.Overall.Level, humanize.Comma(stats.Overall.XP), rankString(stats.Overall.Rank))))
			fmt.Fprintln(out, ui.Separator)
			for _, sk := range skill.Trainable() {
				d := stats.Skills[sk]
				fmt.Fprintf(out, "%s %-12s %2d %14s XP  %s\n", sk.Emoji(), sk, d.Level, humanize.Comma(d.XP), ui.Muted.Render("#"+rankString(d.Rank)))
			}

			// --track adopts the looked-up stats as this hunter's own.
			if track {
				for _, sk := range skill.Trainable() {
					d, ok := stats.Skills[sk]
					if !ok || d.XP < 0 {
						continue
					}
					a.svc.Tracker().SetSkill(sk, d.Level, int(d.XP))
				}
				if err := a.save(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("Tracked stats updated."))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&track, "track", false, "Save the looked-up levels as your tracked stats")
	return cmd
}

func rankString(r int) string {
	if r < 0 {
		return "unranked"
	}
	return humanize.Comma(int64(r))
}

func newCompareCmd() *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "compare <player> <player>...",
		Short: "Compare several players' hiscores side by side",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			results, err := a.hiscores().LookupMany(ctx, args, parallel)
			if err != nil {
				return err
			}
			settings := a.svc.Settings()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconCompare, "Hunter comparison"))
			var found []hiscore.Result
			for _, r := range results {
				if r.Err != nil {
					msg := r.Err.Error()
					if errors.Is(r.Err, hiscore.ErrPlayerNotFound) {
						msg = "not found"
					}
					fmt.Fprintf(out, "%-14s %s\n", r.Player, ui.Bad.Render(msg))
					continue
				}
				found = append(found, r)
				power := rank.PowerLevel(r.Stats.Overall.Level, skill.CombatLevel(levelsOf(r.Stats)), 0)
				fmt.Fprintf(out, "%-14s %s  total %4d  %15s XP  power %s\n",
					r.Player,
					rank.HunterRank(r.Stats.Overall.Level, settings.UseCustomRank, settings.HunterTitle),
					r.Stats.Overall.Level,
					humanize.Comma(r.Stats.Overall.XP),
					humanize.Comma(int64(power)))
			}
			if len(found) < 2 {
				return nil
			}

			fmt.Fprintln(out, ui.Separator)
			for _, sk := range skill.Trainable() {
				best := 0
				for _, r := range found {
					best = max(best, r.Stats.Level(sk))
				}
				cols := make([]string, 0, len(found))
				for _, r := range found {
					lvl := r.Stats.Level(sk)
					cell := fmt.Sprintf("%2d", lvl)
					if lvl == best {
						cell = ui.Gold.Render(cell)
					}
					cols = append(cols, cell)
				}
				fmt.Fprintf(out, "%-12s %s\n", sk, strings.Join(cols, "  "))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Concurrent lookups")
	return cmd
}

func levelsOf(s *hiscore.Stats) map[skill.Skill]int {
	out := make(map[skill.Skill]int, len(s.Skills))
	for sk, d := range s.Skills {
		out[sk] = d.Level
	}
	return out
}

func newWikiCmd() *cobra.Command {
	var info bool

	cmd := &cobra.Command{
		Use:   "wiki <term>",
		Short: "Search the wiki",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			term := strings.Join(args, " ")
			client := a.hiscores()
			out := cmd.OutOrStdout()

			if info {
				e, err := client.EntityInfo(ctx, term)
				if err != nil {
					return err
				}
				if !e.Found {
					fmt.Fprintln(out, ui.Warn.Render("No page for "+term))
					return nil
				}
				fmt.Fprintln(out, ui.Heading(ui.IconInfo, e.Name))
				fmt.Fprintln(out, e.Description)
				fmt.Fprintln(out, ui.Muted.Render(e.URL))
				return nil
			}

			res, err := client.SearchWiki(ctx, term)
			if err != nil {
				return err
			}
			if !res.Found {
				fmt.Fprintln(out, ui.Warn.Render("No results for "+term))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconSearch, res.Title))
			fmt.Fprintln(out, ui.Muted.Render(res.URL))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&info, "info", "i", false, "Show the page extract instead of the search hit")
	return cmd
}
