// ABOUTME: Migration command for converting curio data between storage backends
// ABOUTME: Supports sqlite-to-yaml and yaml-to-sqlite with safety checks

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/config"
	"github.com/harper/curio/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy the feed cache and every item record from the currently configured
backend to a different backend.

Does NOT update the config file; verify the migration was successful then
update config.json manually.

Examples:
  curio migrate --to yaml
  curio migrate --to sqlite --target-dir ~/curio-sqlite
  curio migrate --to yaml --force`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var (
	migrateTo        string
	migrateTargetDir string
	migrateForce     bool
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite or yaml)")
	migrateCmd.Flags().StringVar(&migrateTargetDir, "target-dir", "", "target data directory (defaults to the current data directory)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target directory")
	_ = migrateCmd.MarkFlagRequired("to")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	sourceBackend := cfg.GetBackend()
	targetBackend := migrateTo

	if targetBackend != "sqlite" && targetBackend != "yaml" {
		return fmt.Errorf("invalid target backend %q: must be \"sqlite\" or \"yaml\"", targetBackend)
	}
	if targetBackend == sourceBackend {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	targetDataDir := cfg.GetDataDir()
	if migrateTargetDir != "" {
		targetDataDir = config.ExpandPath(migrateTargetDir)
	}

	// The sqlite and yaml stores use different file names, so sharing the
	// data directory is fine unless the target's own files already exist.
	if migrateTargetDir != "" {
		nonEmpty, err := storage.IsDirNonEmpty(targetDataDir)
		if err != nil {
			return fmt.Errorf("check target directory: %w", err)
		}
		if nonEmpty && !migrateForce {
			return fmt.Errorf("target directory %q is not empty; use --force to overwrite", targetDataDir)
		}
	}

	target := &config.Config{Backend: targetBackend, DataDir: targetDataDir}
	dst, err := target.OpenStorage()
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer dst.Close()

	if !migrateForce && migrateTargetDir == "" {
		stats, err := dst.Stats()
		if err != nil {
			return fmt.Errorf("check target storage: %w", err)
		}
		if stats.Records > 0 {
			return fmt.Errorf("target %s store in %q already has data; use --force to overwrite", targetBackend, targetDataDir)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.YellowString("Migrating curio data:"))
	fmt.Fprintf(out, "  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	fmt.Fprintf(out, "  Target:  %s (%s)\n", targetBackend, targetDataDir)
	fmt.Fprintln(out)

	summary, err := storage.MigrateData(store, dst)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	cache := "none"
	if summary.Cache {
		cache = "copied"
	}
	fmt.Fprintln(out, color.GreenString("Migration complete!"))
	fmt.Fprintf(out, "  Cache:   %s\n", cache)
	fmt.Fprintf(out, "  Records: %d\n", summary.Records)
	fmt.Fprintln(out)
	fmt.Fprintln(out, color.YellowString("Note: config.json was NOT updated. To switch to the new backend, edit:"))
	fmt.Fprintf(out, "  %s\n", config.GetConfigPath())
	fmt.Fprintf(out, "  Set \"backend\": %q", targetBackend)
	if migrateTargetDir != "" {
		fmt.Fprintf(out, " and \"data_dir\": %q", migrateTargetDir)
	}
	fmt.Fprintln(out)

	return nil
}
