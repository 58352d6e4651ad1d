package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nfrund/folio/internal/app"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		injector := app.New(cfg)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := app.Run(ctx, injector)
		if report := injector.Shutdown(); !report.Succeed {
			slog.Error("Shutdown finished with errors", "errors", report.Error())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides FOLIO_ADDR)")
}
