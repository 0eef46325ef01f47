// ABOUTME: Atomic file replacement used by the YAML store and config writer
// ABOUTME: Creates the parent directory then hands the write to renameio

package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// AtomicWrite replaces path with data so readers see either the old or the
// new contents, never a partial file. The result is always mode 0600.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
