// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config and wires the store, sync engine and favourites for subcommands

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/curio/internal/config"
	"github.com/harper/curio/internal/favourites"
	"github.com/harper/curio/internal/feedsync"
	"github.com/harper/curio/internal/fetch"
	"github.com/harper/curio/internal/logging"
	"github.com/harper/curio/internal/models"
	"github.com/harper/curio/internal/storage"
	"github.com/harper/curio/internal/timeutil"
)

// skipStore marks commands that run without opening storage.
const skipStore = "skip-store"

var (
	verbose     bool
	dataDirFlag string
	backendFlag string

	cfg    *config.Config
	logger *log.Logger
	store  storage.Store
	engine *feedsync.Engine
	favs   *favourites.Service
)

var rootCmd = &cobra.Command{
	Use:   "curio",
	Short: "A daily curiosity from the museum collection",
	Long: `
 ██████╗██╗   ██╗██████╗ ██╗ ██████╗
██╔════╝██║   ██║██╔══██╗██║██╔═══██╗
██║     ██║   ██║██████╔╝██║██║   ██║
██║     ██║   ██║██╔══██╗██║██║   ██║
╚██████╗╚██████╔╝██║  ██║██║╚██████╔╝
 ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝ ╚═════╝

One collection item a day, for humans and AI agents.

Caches the feed locally, works offline, and remembers your favourites.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(os.Stderr, verbose)

		if cmd.Annotations[skipStore] == "true" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}

		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		engine = feedsync.New(store, fetch.NewClient(cfg.GetHTTPTimeout()), feedsync.Options{
			FeedURL:       cfg.GetFeedURL(),
			CacheValidity: cfg.GetCacheValidity(),
			FetchTimeout:  cfg.GetHTTPTimeout(),
			HistoryDays:   cfg.GetHistoryDays(),
			Logger:        logger,
		})
		favs = favourites.New(store, logger)

		logger.Debug("storage ready", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command. Cobra skips post-run hooks when a command
// fails, so storage is closed here as well.
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := closeStore(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func closeStore() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	if err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: ~/.local/share/curio)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: sqlite or yaml")
}

// feedError turns an engine error into its one-line message. The full
// cause is logged at debug level.
func feedError(err error) error {
	logger.Debug("feed operation failed", "err", err)
	return errors.New(feedsync.Message(err))
}

// warnIfDegraded tells the user when stale cached content was served.
func warnIfDegraded(cmd *cobra.Command, warning error) {
	var fallback *feedsync.CachedFallbackError
	if errors.As(warning, &fallback) {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintln(cmd.ErrOrStderr(), yellow("⚠ "+feedsync.Message(fallback)))
	}
}

// resolveItem turns a command argument into an item. Empty, "today",
// "yesterday" and YYYY-MM-DD resolve by date; anything else is an item ID.
func resolveItem(ctx context.Context, cmd *cobra.Command, ref string) (models.Item, error) {
	now := timeutil.StartOfToday()

	if ref == "" || ref == "today" {
		item, err := engine.FetchTodaysItem(ctx)
		if err != nil {
			warnIfDegraded(cmd, err)
			return models.Item{}, feedError(err)
		}
		warnIfDegraded(cmd, engine.LastError())
		return item, nil
	}

	if date, ok := timeutil.ParseDay(ref, now); ok {
		item, found, err := engine.FetchItemForDate(ctx, date)
		if err != nil {
			return models.Item{}, feedError(err)
		}
		warnIfDegraded(cmd, engine.LastError())
		if !found {
			return models.Item{}, fmt.Errorf("no curiosity scheduled on or before %s", timeutil.FormatDate(date))
		}
		return item, nil
	}

	item, err := engine.FindItem(ref)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Item{}, fmt.Errorf("item not found: %s (run 'curio fetch' if it is new)", ref)
		}
		return models.Item{}, err
	}
	return item, nil
}

// lookupRecord returns the stored record for id, or nil.
func lookupRecord(id string) *models.Record {
	record, err := store.GetRecord(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("failed to read item record", "item", id, "err", err)
		}
		return nil
	}
	return record
}
