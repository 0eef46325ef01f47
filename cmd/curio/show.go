// ABOUTME: Today and show commands for reading an item card
// ABOUTME: Renders the item with glamour and marks it as viewed

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/render"
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Show today's curiosity",
	Long:    "Show the item scheduled for today, or the most recent earlier item, and mark it as viewed",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showItem(cmd, "today")
	},
}

var showCmd = &cobra.Command{
	Use:   "show <date|item-id>",
	Short: "Show the item for a day or by ID",
	Long: `Show an item card and mark it as viewed.

The argument may be today, yesterday, a YYYY-MM-DD date, or an item ID.
A date with no item shows the most recent item before it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showItem(cmd, args[0])
	},
}

func showItem(cmd *cobra.Command, ref string) error {
	noMark, _ := cmd.Flags().GetBool("no-mark")

	item, err := resolveItem(cmd.Context(), cmd, ref)
	if err != nil {
		return err
	}

	if !noMark {
		if err := favs.MarkAsViewed(item); err != nil {
			logger.Warn("failed to mark item as viewed", "item", item.ID, "err", err)
		}
	}

	markdown := render.ItemMarkdown(item, lookupRecord(item.ID), time.Now())
	fmt.Fprint(cmd.OutOrStdout(), render.Markdown(markdown))
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{todayCmd, showCmd} {
		cmd.Flags().Bool("no-mark", false, "don't mark the item as viewed")
		rootCmd.AddCommand(cmd)
	}
}
