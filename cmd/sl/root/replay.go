package root

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/resolve109/solo-leveling/internal/engine"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newReplayCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "replay <events.jsonl>",
		Short: "Feed a recorded event log through the engine",
		Long: "Each line is one JSON event, e.g. {\"type\":\"stat\",\"skill\":\"Attack\",\"xp\":41171,\"level\":41}.\n" +
			"Blank lines and lines starting with # are skipped. Use - to read stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			applied, skipped := 0, 0
			sc := bufio.NewScanner(in)
			sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
			for lineNo := 1; sc.Scan(); lineNo++ {
				line := bytes.TrimSpace(sc.Bytes())
				if len(line) == 0 || line[0] == '#' {
					continue
				}
				var e engine.Event
				err := json.Unmarshal(line, &e)
				if err == nil {
					err = a.svc.Apply(e)
				}
				if err != nil {
					if strict {
						return fmt.Errorf("line %d: %w", lineNo, err)
					}
					a.log.Warn("skipping event", zap.Int("line", lineNo), zap.Error(err))
					skipped++
					continue
				}
				applied++
			}
			if err := sc.Err(); err != nil {
				return err
			}

			a.svc.Stop()
			if err := a.save(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%d events applied, %d skipped", applied, skipped)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first bad line")
	return cmd
}
