package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/resolve109/solo-leveling/internal/ui"
)

const Version = "0.2.0"

// Persistent flags. Empty values fall through to .env and SL_* variables.
type globalFlags struct {
	envFile  string
	dbPath   string
	logLevel string
	logJSON  bool
}

var flags globalFlags

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sl",
		Short:         "Solo Leveling companion: hunter stats, themed messages and tasks",
		Long:          "sl tracks your skills, hands out hunter-themed tasks and bridges a game-client plugin over a local HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.envFile, "env", ".env", "Path to a .env file")
	pf.StringVar(&flags.dbPath, "db", "", "SQLite database path (default ~/.sololeveling.db)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.BoolVar(&flags.logJSON, "log-json", false, "Log as JSON")

	cmd.AddCommand(
		newStatusCmd(),
		newTasksCmd(),
		newCompleteCmd(),
		newResetCmd(),
		newVisibilityCmd("hide", false),
		newVisibilityCmd("show", true),
		newAddCmd(),
		newRemoveCmd(),
		newGenerateCmd(),
		newHiscoresCmd(),
		newCompareCmd(),
		newWikiCmd(),
		newReplayCmd(),
		newServeCmd(),
		newBoardCmd(),
		newExportCmd(),
		newSettingsCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
