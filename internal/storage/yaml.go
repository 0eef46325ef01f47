// ABOUTME: File-based Store implementation keeping state in two YAML documents
// ABOUTME: _cache.yaml holds the cache slot and _items.yaml the item records

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/curio/internal/models"
)

// YAMLStore provides file-based storage using YAML documents.
// Each write rewrites a whole file atomically, so a pass either lands
// completely or not at all.
type YAMLStore struct {
	dataDir string
	mu      sync.RWMutex
}

// Compile-time check that YAMLStore implements Store.
var _ Store = (*YAMLStore)(nil)

// NewYAMLStore creates a YAML-backed store rooted at dataDir.
func NewYAMLStore(dataDir string) (*YAMLStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &YAMLStore{dataDir: dataDir}, nil
}

// Close releases resources. For YAMLStore this is a no-op.
func (s *YAMLStore) Close() error {
	return nil
}

func (s *YAMLStore) cacheFilePath() string {
	return filepath.Join(s.dataDir, "_cache.yaml")
}

func (s *YAMLStore) itemsFilePath() string {
	return filepath.Join(s.dataDir, "_items.yaml")
}

// cacheFile is the on-disk shape of the cache slot. Items stay an opaque
// JSON string so the structured fields survive a bad blob.
type cacheFile struct {
	ID          string    `yaml:"id"`
	Version     string    `yaml:"version"`
	GeneratedAt string    `yaml:"generated_at"`
	FetchedAt   time.Time `yaml:"fetched_at"`
	ItemsJSON   string    `yaml:"items_json"`
}

type recordEntry struct {
	ItemID            string     `yaml:"item_id"`
	DisplayDate       string     `yaml:"display_date"`
	Title             string     `yaml:"title"`
	Summary           string     `yaml:"summary"`
	FunFact           *string    `yaml:"fun_fact,omitempty"`
	ImageURL          string     `yaml:"image_url"`
	ThumbnailURL      string     `yaml:"thumbnail_url"`
	AspectRatio       *float64   `yaml:"aspect_ratio,omitempty"`
	Credit            string     `yaml:"credit"`
	Licence           string     `yaml:"licence"`
	MuseumURL         string     `yaml:"museum_url"`
	LocationName      *string    `yaml:"location_name,omitempty"`
	LocationRegion    *string    `yaml:"location_region,omitempty"`
	LocationLatitude  *float64   `yaml:"location_latitude,omitempty"`
	LocationLongitude *float64   `yaml:"location_longitude,omitempty"`
	LocationShowOnMap bool       `yaml:"location_show_on_map,omitempty"`
	Tags              []string   `yaml:"tags"`
	MineralMonday     bool       `yaml:"mineral_monday,omitempty"`
	IsFavourite       bool       `yaml:"is_favourite,omitempty"`
	FavouritedAt      *time.Time `yaml:"favourited_at,omitempty"`
	ViewedAt          *time.Time `yaml:"viewed_at,omitempty"`
}

func (e recordEntry) toModel() *models.Record {
	r := models.Record(e)
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return &r
}

func fromRecordModel(r *models.Record) recordEntry {
	e := recordEntry(*r)
	e.Tags = nonNilTags(e.Tags)
	if e.FavouritedAt != nil {
		t := e.FavouritedAt.UTC()
		e.FavouritedAt = &t
	}
	if e.ViewedAt != nil {
		t := e.ViewedAt.UTC()
		e.ViewedAt = &t
	}
	return e
}

// Cache Operations

// LoadCache reads the cache slot.
func (s *YAMLStore) LoadCache() (*models.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.cacheFilePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var cf cacheFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	if cf.ID == "" {
		return nil, ErrNotFound
	}

	return &models.CacheEntry{
		ID:          cf.ID,
		Version:     cf.Version,
		GeneratedAt: cf.GeneratedAt,
		FetchedAt:   cf.FetchedAt,
		ItemsData:   []byte(cf.ItemsJSON),
	}, nil
}

// ReplaceCache overwrites the cache slot in a single rename.
func (s *YAMLStore) ReplaceCache(entry *models.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(cacheFile{
		ID:          entry.ID,
		Version:     entry.Version,
		GeneratedAt: entry.GeneratedAt,
		FetchedAt:   entry.FetchedAt.UTC(),
		ItemsJSON:   string(entry.ItemsData),
	})
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}
	return AtomicWrite(s.cacheFilePath(), data)
}

// Item Record Operations

func (s *YAMLStore) readRecords() (map[string]*models.Record, error) {
	data, err := os.ReadFile(s.itemsFilePath())
	if errors.Is(err, os.ErrNotExist) {
		return map[string]*models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}

	var entries []recordEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse items file: %w", err)
	}

	records := make(map[string]*models.Record, len(entries))
	for _, e := range entries {
		records[e.ItemID] = e.toModel()
	}
	return records, nil
}

func (s *YAMLStore) writeRecords(records map[string]*models.Record) error {
	entries := make([]recordEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, fromRecordModel(r))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ItemID < entries[j].ItemID })

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode items file: %w", err)
	}
	return AtomicWrite(s.itemsFilePath(), data)
}

// Reconcile merges items in memory and writes the file once.
func (s *YAMLStore) Reconcile(items []models.Item) (*ReconcileSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	summary := &ReconcileSummary{}
	for _, item := range items {
		if existing, ok := records[item.ID]; ok {
			existing.ApplyDisplay(item)
			summary.Updated++
			continue
		}
		records[item.ID] = models.NewRecord(item)
		summary.Created++
	}

	if err := s.writeRecords(records); err != nil {
		return nil, err
	}
	return summary, nil
}

// GetRecord retrieves a record by item ID.
func (s *YAMLStore) GetRecord(itemID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}
	record, ok := records[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// UpdateRecord applies fn to one record's user state.
func (s *YAMLStore) UpdateRecord(seed models.Item, fn func(r *models.Record)) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	record, ok := records[seed.ID]
	if !ok {
		record = models.NewRecord(seed)
		fn(record)
		records[seed.ID] = record
	} else {
		// Only user state may change on an existing record
		scratch := *record
		fn(&scratch)
		record.IsFavourite = scratch.IsFavourite
		record.FavouritedAt = scratch.FavouritedAt
		record.ViewedAt = scratch.ViewedAt
	}

	if err := s.writeRecords(records); err != nil {
		return nil, err
	}
	return record, nil
}

// ListFavourites returns favourite records, newest favourite first.
func (s *YAMLStore) ListFavourites() ([]*models.Record, error) {
	return s.filterRecords(func(r *models.Record) bool { return r.IsFavourite }, SortFavourites, 0)
}

// ListViewed returns viewed records, newest view first.
func (s *YAMLStore) ListViewed(limit int) ([]*models.Record, error) {
	return s.filterRecords(func(r *models.Record) bool { return r.ViewedAt != nil }, SortViewed, limit)
}

// ListRecords returns every record ordered by item ID.
func (s *YAMLStore) ListRecords() ([]*models.Record, error) {
	return s.filterRecords(func(*models.Record) bool { return true }, func(records []*models.Record) {
		sort.Slice(records, func(i, j int) bool { return records[i].ItemID < records[j].ItemID })
	}, 0)
}

func (s *YAMLStore) filterRecords(keep func(*models.Record) bool, order func([]*models.Record), limit int) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	out := []*models.Record{}
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	order(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ImportRecords replaces records wholesale in one write.
func (s *YAMLStore) ImportRecords(incoming []*models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readRecords()
	if err != nil {
		return err
	}
	for _, r := range incoming {
		copied := *r
		records[r.ItemID] = &copied
	}
	return s.writeRecords(records)
}

// Stats returns record counts.
func (s *YAMLStore) Stats() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}

	stats := &Stats{Records: len(records)}
	for _, r := range records {
		if r.IsFavourite {
			stats.Favourites++
		}
		if r.ViewedAt != nil {
			stats.Viewed++
		}
	}
	return stats, nil
}
