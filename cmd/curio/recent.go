// ABOUTME: Recent command listing items from the last few days
// ABOUTME: Shows date label, title and favourite marker for each item

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/render"
)

var recentCmd = &cobra.Command{
	Use:     "recent",
	Aliases: []string{"ls", "l"},
	Short:   "List recent items",
	Long:    "List items from the last N days including today, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		if days < 0 {
			return fmt.Errorf("--days must be positive, got %d", days)
		}

		items, err := engine.FetchRecentItems(cmd.Context(), days)
		if err != nil {
			return feedError(err)
		}
		warnIfDegraded(cmd, engine.LastError())

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No recent items")
			return nil
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		now := time.Now()
		for _, item := range items {
			star := " "
			if favs.IsItemFavourite(item) {
				star = yellow("★")
			}
			fmt.Fprintf(out, "%s %s\n", star, render.ItemLine(item, now))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().IntP("days", "d", 0, "number of days to list (default: history_days from config)")
}
