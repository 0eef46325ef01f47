// ABOUTME: Fetch command for refreshing the feed from the network
// ABOUTME: Replaces the cache and refreshes stored items, reporting degraded fallbacks

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/feedsync"
	"github.com/harper/curio/internal/render"
)

var fetchCmd = &cobra.Command{
	Use:     "fetch",
	Aliases: []string{"refresh"},
	Short:   "Refresh the feed",
	Long: `Fetch the feed from the network, replace the local cache, and refresh stored item details.

Favourites and viewed history are never changed by a refresh. If the network
is unavailable the cached copy is kept and a warning is shown.

Use --if-stale to skip the network while the cache is still valid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ifStale, _ := cmd.Flags().GetBool("if-stale")

		result, err := engine.FetchFeed(cmd.Context(), !ifStale)
		if err != nil {
			return feedError(err)
		}
		warnIfDegraded(cmd, result.Warning)

		green := color.New(color.FgGreen).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		out := cmd.OutOrStdout()

		switch result.Source {
		case feedsync.SourceNetwork:
			fmt.Fprintf(out, "%s Fetched %d items (feed version %s)\n", green("✓"), len(result.Document.Items), result.Document.Version)
		case feedsync.SourceCache:
			fmt.Fprintf(out, "%s Cache is fresh: %d items\n", green("✓"), len(result.Document.Items))
		case feedsync.SourceFallback:
			fmt.Fprintf(out, "Kept cached feed: %d items\n", len(result.Document.Items))
		}
		fmt.Fprintf(out, "  %s %s\n", faint("fetched"), render.Age(result.FetchedAt, time.Now()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().Bool("if-stale", false, "only hit the network when the cache has expired")
}
