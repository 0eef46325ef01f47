// ABOUTME: Data migration between curio storage backends
// ABOUTME: Copies the cache slot and every item record from source to destination store

package storage

import (
	"errors"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Cache   bool
	Records int
}

// MigrateData copies all data from src to dst storage. Records are written
// whole, user state included. The destination should be empty before
// calling this function.
func MigrateData(src, dst Store) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	entry, err := src.LoadCache()
	switch {
	case err == nil:
		if err := dst.ReplaceCache(entry); err != nil {
			return nil, fmt.Errorf("write cache: %w", err)
		}
		summary.Cache = true
	case errors.Is(err, ErrNotFound):
		// Nothing cached yet
	default:
		return nil, fmt.Errorf("read source cache: %w", err)
	}

	records, err := src.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("list source records: %w", err)
	}
	if err := dst.ImportRecords(records); err != nil {
		return nil, fmt.Errorf("import records: %w", err)
	}
	summary.Records = len(records)

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
