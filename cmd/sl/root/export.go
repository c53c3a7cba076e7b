package root

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/report"
	"github.com/resolve109/solo-leveling/internal/ui"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the hunter report as JSON, CSV or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == report.FormatPDF && output == "" {
				return fmt.Errorf("pdf export needs --out")
			}

			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			completions, err := a.store.CompletionRepo().ListRecent(ctx, 0)
			if err != nil {
				return err
			}
			r := report.Build(a.svc.Status(), a.svc.TaskManager().All(), completions, time.Now())

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			if err := r.Write(w, f); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Good.Render(fmt.Sprintf("%s Wrote %s", ui.IconDone, output)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, csv or pdf")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (default stdout)")
	return cmd
}
