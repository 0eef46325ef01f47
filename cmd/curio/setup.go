// ABOUTME: Cobra command for interactive curio configuration.
// ABOUTME: Launches a bubbletea TUI wizard to select backend, data directory and feed URL.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/config"
	"github.com/harper/curio/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:         "setup",
	Short:       "Configure curio storage and feed source",
	Long:        "Interactive wizard to configure the storage backend, data directory and feed URL.",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: "true"},
	RunE:        runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	defaults := config.Defaults()
	model := tui.NewSetupModel(
		tui.Settings{Backend: cfg.Backend, DataDir: cfg.DataDir, FeedURL: cfg.FeedURL},
		tui.Settings{Backend: defaults.Backend, DataDir: defaults.DataDir, FeedURL: defaults.FeedURL},
	)

	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Fprintln(cmd.OutOrStdout(), "Setup canceled.")
		return nil
	}

	settings := final.Result()
	cfg.Backend = settings.Backend
	cfg.DataDir = settings.DataDir
	cfg.FeedURL = settings.FeedURL

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", config.GetConfigPath())
	return nil
}
