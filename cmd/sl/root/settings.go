package root

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/ui"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings after .env, SL_* and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cfg.Settings); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Database", cfg.Runtime.DBPath))
			fmt.Fprintln(out, ui.LabelValue("Bridge", cfg.Runtime.HTTPAddr))
			for _, c := range cfg.Clamped {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" "+c.Error()))
			}
			return nil
		},
	}
}
