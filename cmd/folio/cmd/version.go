package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...cmd.version=".
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio v%s (%s%s)\n", version, runtime.Version(), revision())
	},
}

// revision returns ", rev <short hash>" when the binary carries VCS info.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return ", rev " + s.Value[:7]
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
