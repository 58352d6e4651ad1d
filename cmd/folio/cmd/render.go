package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/nfrund/folio/internal/app"
	"github.com/spf13/cobra"
)

var (
	renderOutput   string
	renderWidth    int
	renderLanguage string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the résumé to a standalone HTML file",
	Long: `Render loads the résumé and repositories (from the cache when fresh) and
writes the complete page without scripts, ready to publish as static HTML.

Examples:
  folio render -o index.html
  folio render --width 1920 --lang en > resume.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderWidth < 0 || renderWidth > 10000 {
			return fmt.Errorf("--width must be between 1 and 10000, or 0 for the default")
		}

		var out io.Writer = cmd.OutOrStdout()
		if renderOutput != "" && renderOutput != "-" {
			f, err := os.Create(renderOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", renderOutput, err)
			}
			defer f.Close()
			out = f
		}

		injector := app.New(loadConfig())
		defer injector.Shutdown()

		if err := app.RenderStatic(cmd.Context(), injector, out, app.StaticOptions{
			Width:    renderWidth,
			Language: renderLanguage,
		}); err != nil {
			return err
		}
		if renderOutput != "" && renderOutput != "-" {
			fmt.Fprintln(cmd.ErrOrStderr(), successPrefix, "Wrote", renderOutput)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default stdout)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Viewport width the project ticker is sized for")
	renderCmd.Flags().StringVar(&renderLanguage, "lang", "", "Accept-Language value, e.g. en or pt-BR")
}
