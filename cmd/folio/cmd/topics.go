package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	// Registers the load events.
	_ "github.com/nfrund/folio/internal/loader"
	"github.com/nfrund/folio/internal/pubsub"
	"github.com/spf13/cobra"
)

var topicsFormat string

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the events published on the internal bus",
	Long: `List every typed topic with its payload fields.

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := pubsub.Topics()
		out := cmd.OutOrStdout()

		switch topicsFormat {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(topics)
		case "table":
			fmt.Fprintln(out, headerStyle.Render(column("TOPIC", 24)+column("PAYLOAD", 28)+"DESCRIPTION"))
			for _, t := range topics {
				fmt.Fprintln(out, column(t.Name, 24)+
					column(t.TypeName+"{"+strings.Join(t.PayloadFields, ",")+"}", 28)+
					dimStyle.Render(t.Description))
			}
			return nil
		default:
			return fmt.Errorf("unsupported output format %q, use table or json", topicsFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.Flags().StringVarP(&topicsFormat, "format", "f", "table", "Output format (table, json)")
}
