package cmd

import (
	"os"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Résumé and portfolio site backed by a GitHub gist",
	Long: `folio serves a résumé built from a curriculo.json gist and the owner's
public GitHub repositories, caching both locally.

Configuration comes from FOLIO_* environment variables (or a .env file) and
the site configuration file named by FOLIO_SITE_CONFIG.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Only the server logs to stdout; other commands may print results there.
		if cmd == serveCmd {
			logging.New()
		} else {
			logging.NewTo(os.Stderr)
		}
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig is the process configuration shared by every command.
func loadConfig() *config.Config {
	return config.New()
}
