// ABOUTME: Status command showing cache freshness and store counts
// ABOUTME: Reads only local state and never touches the network

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/render"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache and storage status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Fprintf(out, "Backend:   %s\n", cfg.GetBackend())
		fmt.Fprintf(out, "Data dir:  %s\n", cfg.GetDataDir())
		fmt.Fprintf(out, "Feed:      %s\n", cfg.GetFeedURL())
		fmt.Fprintln(out)

		status := engine.Status()
		if !status.HasCache {
			fmt.Fprintf(out, "Cache:     %s\n", yellow("empty (run 'curio fetch')"))
		} else {
			state := green("fresh")
			if !status.CacheValid {
				state = yellow("stale")
			}
			fmt.Fprintf(out, "Cache:     %s, %d items, version %s\n", state, status.CacheItems, status.CacheVersion)
			fmt.Fprintf(out, "Fetched:   %s\n", render.Age(status.CacheFetchedAt, time.Now()))
		}

		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("failed to read stats: %w", err)
		}
		fmt.Fprintf(out, "Items:     %d stored, %d favourites, %d viewed\n", stats.Records, stats.Favourites, stats.Viewed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
