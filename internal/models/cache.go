// ABOUTME: CacheEntry model for the single persisted snapshot of the last good fetch
// ABOUTME: Items are kept as an opaque JSON blob so a corrupt blob only empties the list

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCacheValidity is how long a cached document is trusted without refetching.
const DefaultCacheValidity = time.Hour

// CacheEntry is a snapshot of one successfully fetched Document.
type CacheEntry struct {
	ID          string
	Version     string
	GeneratedAt string
	FetchedAt   time.Time
	ItemsData   []byte // JSON-encoded []Item
}

// NewCacheEntry snapshots doc with a fresh ID.
func NewCacheEntry(doc *Document, fetchedAt time.Time) (*CacheEntry, error) {
	items := doc.Items
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cached items: %w", err)
	}
	return &CacheEntry{
		ID:          uuid.New().String(),
		Version:     doc.Version,
		GeneratedAt: doc.GeneratedAt,
		FetchedAt:   fetchedAt,
		ItemsData:   data,
	}, nil
}

// IsValid reports whether the entry is younger than window at now.
// A non-positive window means DefaultCacheValidity.
func (c *CacheEntry) IsValid(now time.Time, window time.Duration) bool {
	if window <= 0 {
		window = DefaultCacheValidity
	}
	return now.Sub(c.FetchedAt) < window
}

// Items decodes the items blob.
func (c *CacheEntry) Items() ([]Item, error) {
	if len(c.ItemsData) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(c.ItemsData, &items); err != nil {
		return nil, fmt.Errorf("decode cached items: %w", err)
	}
	return items, nil
}

// Document rebuilds the cached Document. An undecodable items blob yields
// a Document with no items rather than an error.
func (c *CacheEntry) Document() *Document {
	items, err := c.Items()
	if err != nil {
		items = []Item{}
	}
	return &Document{
		Version:     c.Version,
		GeneratedAt: c.GeneratedAt,
		Items:       items,
	}
}
