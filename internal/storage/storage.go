// ABOUTME: Storage interface and types for curio persistence
// ABOUTME: Defines the single-slot feed cache and the durable per-item record store

package storage

import (
	"errors"
	"sort"

	"github.com/harper/curio/internal/models"
)

// ErrNotFound is returned when a cache entry or record does not exist.
var ErrNotFound = errors.New("not found")

// ReconcileSummary counts what one reconciliation pass did.
type ReconcileSummary struct {
	Created int
	Updated int
}

// Stats summarises the item store.
type Stats struct {
	Records    int
	Favourites int
	Viewed     int
}

// Store defines the storage interface for curio data.
//
// Every method is one unit of durability: multi-row writes either commit
// completely or not at all, and readers never observe a partial write.
type Store interface {
	// Close closes the store and releases resources.
	Close() error

	// Cache Operations

	// LoadCache returns the cached feed snapshot, or ErrNotFound.
	LoadCache() (*models.CacheEntry, error)

	// ReplaceCache stores entry as the only cache entry. The old entry is
	// removed after the new one is in place, so there is never a moment
	// with no cache.
	ReplaceCache(entry *models.CacheEntry) error

	// Item Record Operations

	// Reconcile merges fetched items into the record store. Existing records
	// get their display fields refreshed and keep their user state; unknown
	// items get new records with default user state.
	Reconcile(items []models.Item) (*ReconcileSummary, error)

	// GetRecord retrieves a record by item ID, or ErrNotFound.
	GetRecord(itemID string) (*models.Record, error)

	// UpdateRecord applies fn to the record for seed.ID inside one
	// read-modify-write, creating the record from seed when absent. On an
	// existing record only the user state set by fn is written back.
	UpdateRecord(seed models.Item, fn func(r *models.Record)) (*models.Record, error)

	// ListFavourites returns favourite records, most recently favourited
	// first; records without a timestamp sort last.
	ListFavourites() ([]*models.Record, error)

	// ListViewed returns viewed records, most recently viewed first.
	// A non-positive limit returns all of them.
	ListViewed(limit int) ([]*models.Record, error)

	// ListRecords returns every record ordered by item ID.
	ListRecords() ([]*models.Record, error)

	// ImportRecords writes complete records, replacing any with the same ID.
	ImportRecords(records []*models.Record) error

	// Stats returns record counts.
	Stats() (*Stats, error)
}

// SortFavourites orders records by FavouritedAt descending with missing
// timestamps last. Ties keep item ID order.
func SortFavourites(records []*models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].FavouritedAt, records[j].FavouritedAt
		switch {
		case a == nil && b == nil:
			return records[i].ItemID < records[j].ItemID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return records[i].ItemID < records[j].ItemID
		default:
			return a.After(*b)
		}
	})
}

// SortViewed orders records by ViewedAt descending with missing timestamps last.
func SortViewed(records []*models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].ViewedAt, records[j].ViewedAt
		switch {
		case a == nil && b == nil:
			return records[i].ItemID < records[j].ItemID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return records[i].ItemID < records[j].ItemID
		default:
			return a.After(*b)
		}
	})
}
