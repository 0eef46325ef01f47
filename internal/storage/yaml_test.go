// ABOUTME: Tests specific to the YAML file storage implementation
// ABOUTME: Covers file layout, corrupt files and atomic writes

package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/curio/internal/models"
)

func newTestYAMLStore(t *testing.T) *YAMLStore {
	t.Helper()
	store, err := NewYAMLStore(filepath.Join(t.TempDir(), "curio"))
	if err != nil {
		t.Fatalf("failed to create yaml store: %v", err)
	}
	return store
}

func TestYAMLStoreFiles(t *testing.T) {
	store := newTestYAMLStore(t)

	if err := store.ReplaceCache(testEntry(t, time.Now(), "a")); err != nil {
		t.Fatalf("ReplaceCache failed: %v", err)
	}
	if _, err := store.Reconcile([]models.Item{testItem("a", "2026-01-10")}); err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	for _, name := range []string{"_cache.yaml", "_items.yaml"} {
		if _, err := os.Stat(filepath.Join(store.dataDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	data, err := os.ReadFile(store.itemsFilePath())
	if err != nil {
		t.Fatalf("read items file: %v", err)
	}
	if !strings.Contains(string(data), "item_id: a") {
		t.Errorf("unexpected items file:\n%s", data)
	}
}

func TestYAMLStoreCorruptCacheFile(t *testing.T) {
	store := newTestYAMLStore(t)

	if err := os.WriteFile(store.cacheFilePath(), []byte("id: [unterminated"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.LoadCache(); err == nil {
		t.Error("expected error for corrupt cache file")
	}
}

func TestYAMLStoreCorruptItemsFileLeavesFileUntouched(t *testing.T) {
	store := newTestYAMLStore(t)

	corrupt := []byte("- item_id: [oops")
	if err := os.WriteFile(store.itemsFilePath(), corrupt, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := store.Reconcile([]models.Item{testItem("a", "2026-01-10")}); err == nil {
		t.Fatal("expected reconcile to fail on corrupt items file")
	}

	data, err := os.ReadFile(store.itemsFilePath())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != string(corrupt) {
		t.Error("failed reconcile must not rewrite the file")
	}
}

func TestAtomicWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir", "file.yaml")

	if err := AtomicWrite(path, []byte("one")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if err := AtomicWrite(path, []byte("two")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "two" {
		t.Errorf("expected latest contents, got %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestAtomicWrite_PrivateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := AtomicWrite(path, []byte("new")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600 after replace, got %o", info.Mode().Perm())
	}
}

func TestAtomicWrite_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x", "y", "z", "items.yaml")
	if err := AtomicWrite(path, []byte("items: []\n")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}
