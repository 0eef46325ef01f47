// ABOUTME: Favourite commands for toggling and listing favourite items
// ABOUTME: Favourites survive feed refreshes and work offline from stored records

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/config"
	"github.com/harper/curio/internal/render"
)

var favCmd = &cobra.Command{
	Use:     "fav [date|item-id]",
	Aliases: []string{"star"},
	Short:   "Toggle an item as favourite",
	Long: `Toggle the favourite flag on an item. Defaults to today's item.

The argument may be today, yesterday, a YYYY-MM-DD date, or an item ID.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) == 1 {
			ref = args[0]
		}

		item, err := resolveItem(cmd.Context(), cmd, ref)
		if err != nil {
			return err
		}

		favourite, err := favs.ToggleFavourite(item)
		if err != nil {
			return fmt.Errorf("failed to update favourite: %w", err)
		}

		out := cmd.OutOrStdout()
		if favourite {
			fmt.Fprintf(out, "%s Favourited: %s\n", color.New(color.FgYellow).Sprint("★"), item.Title)
		} else {
			fmt.Fprintf(out, "%s Removed from favourites: %s\n", color.New(color.Faint).Sprint("☆"), item.Title)
		}
		return nil
	},
}

var favouritesCmd = &cobra.Command{
	Use:     "favourites",
	Aliases: []string{"favs", "favorites"},
	Short:   "List favourite items",
	Long:    "List favourite items, most recently favourited first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := favs.FavouriteRecords()
		if err != nil {
			return fmt.Errorf("failed to list favourites: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No favourites yet. Use 'curio fav' to add today's item.")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		now := time.Now()
		for _, record := range records {
			fmt.Fprintln(out, render.ItemLine(record.ToItem(), now))
			if record.FavouritedAt != nil {
				fmt.Fprintf(out, "    %s\n", faint("favourited "+render.Age(*record.FavouritedAt, now)))
			}
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently viewed items",
	Long:  "List items you have viewed, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		records, err := favs.RecentlyViewed(limit)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "Nothing viewed yet")
			return nil
		}

		faint := color.New(color.Faint).SprintFunc()
		now := time.Now()
		for _, record := range records {
			line := render.ItemLine(record.ToItem(), now)
			if record.ViewedAt != nil {
				line += "  " + faint(render.Age(*record.ViewedAt, now))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(favouritesCmd)
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", config.DefaultListLimit, "maximum number of items (0 for all)")
}
