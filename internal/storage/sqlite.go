// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Keeps the feed cache slot and item records, with transactional swap and reconcile

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/curio/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// WAL lets readers proceed while a reconcile transaction is open
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS feed_cache (
			id TEXT PRIMARY KEY,
			version TEXT NOT NULL,
			generated_at TEXT NOT NULL,
			fetched_at TIMESTAMP NOT NULL,
			items BLOB
		);

		CREATE INDEX IF NOT EXISTS idx_feed_cache_fetched_at ON feed_cache(fetched_at);

		CREATE TABLE IF NOT EXISTS items (
			item_id TEXT PRIMARY KEY,
			display_date TEXT NOT NULL,
			title TEXT NOT NULL,
			summary TEXT NOT NULL,
			fun_fact TEXT,
			image_url TEXT NOT NULL,
			thumbnail_url TEXT NOT NULL,
			aspect_ratio REAL,
			credit TEXT NOT NULL,
			licence TEXT NOT NULL,
			museum_url TEXT NOT NULL,
			location_name TEXT,
			location_region TEXT,
			location_latitude REAL,
			location_longitude REAL,
			location_show_on_map INTEGER DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '[]',
			mineral_monday INTEGER DEFAULT 0,
			is_favourite INTEGER DEFAULT 0,
			favourited_at TIMESTAMP,
			viewed_at TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_items_favourite ON items(is_favourite, favourited_at);
		CREATE INDEX IF NOT EXISTS idx_items_viewed_at ON items(viewed_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Cache Operations

// LoadCache returns the newest cache entry.
func (s *SQLiteStore) LoadCache() (*models.CacheEntry, error) {
	entry := &models.CacheEntry{}
	err := s.db.QueryRow(`
		SELECT id, version, generated_at, fetched_at, items
		FROM feed_cache ORDER BY fetched_at DESC LIMIT 1
	`).Scan(&entry.ID, &entry.Version, &entry.GeneratedAt, &entry.FetchedAt, &entry.ItemsData)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	return entry, nil
}

// ReplaceCache inserts entry and then deletes every other entry, in one transaction.
func (s *SQLiteStore) ReplaceCache(entry *models.CacheEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache swap: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO feed_cache (id, version, generated_at, fetched_at, items)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.Version, entry.GeneratedAt, entry.FetchedAt.UTC(), entry.ItemsData); err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM feed_cache WHERE id != ?`, entry.ID); err != nil {
		return fmt.Errorf("delete old cache entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache swap: %w", err)
	}
	return nil
}

// Item Record Operations

const recordColumns = `
	item_id, display_date, title, summary, fun_fact, image_url, thumbnail_url,
	aspect_ratio, credit, licence, museum_url,
	location_name, location_region, location_latitude, location_longitude, location_show_on_map,
	tags, mineral_monday, is_favourite, favourited_at, viewed_at`

// Reconcile refreshes or creates one record per item in a single transaction.
func (s *SQLiteStore) Reconcile(items []models.Item) (*ReconcileSummary, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin reconcile: %w", err)
	}
	defer tx.Rollback()

	summary := &ReconcileSummary{}
	for _, item := range items {
		var exists int
		err := tx.QueryRow(`SELECT 1 FROM items WHERE item_id = ?`, item.ID).Scan(&exists)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := insertRecord(tx, models.NewRecord(item), false); err != nil {
				return nil, err
			}
			summary.Created++
		case err != nil:
			return nil, fmt.Errorf("check record %s: %w", item.ID, err)
		default:
			if _, err := tx.Exec(`
				UPDATE items
				SET title = ?, summary = ?, fun_fact = ?, image_url = ?, thumbnail_url = ?,
					aspect_ratio = ?, credit = ?, licence = ?
				WHERE item_id = ?
			`, item.Title, item.Summary, item.FunFact, item.ImageURL, item.ThumbnailURL,
				item.AspectRatio, item.Credit, item.Licence, item.ID); err != nil {
				return nil, fmt.Errorf("update record %s: %w", item.ID, err)
			}
			summary.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconcile: %w", err)
	}
	return summary, nil
}

// GetRecord retrieves a record by item ID.
func (s *SQLiteStore) GetRecord(itemID string) (*models.Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM items WHERE item_id = ?`, itemID)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// UpdateRecord runs a read-modify-write of one record's user state.
func (s *SQLiteStore) UpdateRecord(seed models.Item, fn func(r *models.Record)) (*models.Record, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	created := false
	record, err := scanRecord(tx.QueryRow(`SELECT `+recordColumns+` FROM items WHERE item_id = ?`, seed.ID))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		record = models.NewRecord(seed)
		created = true
	case err != nil:
		return nil, fmt.Errorf("get record: %w", err)
	}

	fn(record)

	if created {
		if err := insertRecord(tx, record, false); err != nil {
			return nil, err
		}
	} else {
		if _, err := tx.Exec(`
			UPDATE items SET is_favourite = ?, favourited_at = ?, viewed_at = ?
			WHERE item_id = ?
		`, boolToInt(record.IsFavourite), timeToSQL(record.FavouritedAt), timeToSQL(record.ViewedAt), record.ItemID); err != nil {
			return nil, fmt.Errorf("update user state: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return record, nil
}

// ListFavourites returns favourite records, newest favourite first.
func (s *SQLiteStore) ListFavourites() ([]*models.Record, error) {
	return s.queryRecords(`
		SELECT ` + recordColumns + ` FROM items
		WHERE is_favourite = 1
		ORDER BY favourited_at IS NULL, favourited_at DESC, item_id
	`)
}

// ListViewed returns viewed records, newest view first.
func (s *SQLiteStore) ListViewed(limit int) ([]*models.Record, error) {
	query := `
		SELECT ` + recordColumns + ` FROM items
		WHERE viewed_at IS NOT NULL
		ORDER BY viewed_at DESC, item_id
	`
	if limit > 0 {
		return s.queryRecords(query+` LIMIT ?`, limit)
	}
	return s.queryRecords(query)
}

// ListRecords returns every record.
func (s *SQLiteStore) ListRecords() ([]*models.Record, error) {
	return s.queryRecords(`SELECT ` + recordColumns + ` FROM items ORDER BY item_id`)
}

// ImportRecords replaces records wholesale in one transaction.
func (s *SQLiteStore) ImportRecords(records []*models.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		if err := insertRecord(tx, record, true); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Stats returns record counts.
func (s *SQLiteStore) Stats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(is_favourite), 0), COUNT(viewed_at) FROM items
	`).Scan(&stats.Records, &stats.Favourites, &stats.Viewed)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// Helper functions

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

func insertRecord(db execer, r *models.Record, replace bool) error {
	tags, err := json.Marshal(nonNilTags(r.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}

	_, err = db.Exec(verb+` INTO items (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ItemID, r.DisplayDate, r.Title, r.Summary, r.FunFact, r.ImageURL, r.ThumbnailURL,
		r.AspectRatio, r.Credit, r.Licence, r.MuseumURL,
		r.LocationName, r.LocationRegion, r.LocationLatitude, r.LocationLongitude, boolToInt(r.LocationShowOnMap),
		string(tags), boolToInt(r.MineralMonday), boolToInt(r.IsFavourite),
		timeToSQL(r.FavouritedAt), timeToSQL(r.ViewedAt),
	)
	if err != nil {
		return fmt.Errorf("insert record %s: %w", r.ItemID, err)
	}
	return nil
}

func scanRecord(row scanner) (*models.Record, error) {
	r := &models.Record{}
	var tags string
	err := row.Scan(
		&r.ItemID, &r.DisplayDate, &r.Title, &r.Summary, &r.FunFact, &r.ImageURL, &r.ThumbnailURL,
		&r.AspectRatio, &r.Credit, &r.Licence, &r.MuseumURL,
		&r.LocationName, &r.LocationRegion, &r.LocationLatitude, &r.LocationLongitude, &r.LocationShowOnMap,
		&tags, &r.MineralMonday, &r.IsFavourite, &r.FavouritedAt, &r.ViewedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
		// Tags are display-only; a bad column must not hide the record
		r.Tags = []string{}
	}
	return r, nil
}

func (s *SQLiteStore) queryRecords(query string, args ...any) ([]*models.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []*models.Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func timeToSQL(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
