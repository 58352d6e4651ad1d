package cmd

import (
	"fmt"
	"time"

	"github.com/nfrund/folio/internal/app"
	"github.com/nfrund/folio/internal/cache"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local cache",
}

var cacheLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cached entries with their age",
	RunE: func(cmd *cobra.Command, args []string) error {
		injector := app.New(loadConfig())
		defer injector.Shutdown()

		c, err := do.Invoke[*cache.Cache](injector)
		if err != nil {
			return err
		}
		entries, err := c.Entries(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, dimStyle.Render("Cache is empty."))
			return nil
		}
		fmt.Fprintln(out, headerStyle.Render(column("KEY", 18)+column("WRITTEN", 22)+column("AGE", 12)+"STATUS"))
		for _, e := range entries {
			status := successStyle.Render("fresh")
			if e.Expired {
				status = warningStyle.Render("expired")
			}
			fmt.Fprintln(out, column(e.Key, 18)+
				column(e.Written.Local().Format(time.DateTime), 22)+
				column(e.Age.Round(time.Second).String(), 12)+
				status)
		}
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("TTL %s", c.TTL())))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		injector := app.New(loadConfig())
		defer injector.Shutdown()

		c, err := do.Invoke[*cache.Cache](injector)
		if err != nil {
			return err
		}
		n, err := c.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successPrefix, fmt.Sprintf("Removed %d entries", n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheLsCmd, cacheClearCmd)
}
