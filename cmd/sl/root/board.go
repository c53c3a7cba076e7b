package root

import (
	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive task board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			err = tui.RunBoard(ctx, a.svc, a.save, cmd.OutOrStdout())
			a.svc.Stop()
			if serr := a.save(ctx); err == nil {
				err = serr
			}
			return err
		},
	}
}
