// ABOUTME: Favourite and viewed state for feed items
// ABOUTME: Reads and writes only the item store, never the network

package favourites

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/curio/internal/models"
	"github.com/harper/curio/internal/storage"
)

// Service toggles favourites and records views.
type Service struct {
	store  storage.Store
	logger *log.Logger
	now    func() time.Time
}

// New creates a Service over store. A nil logger discards output.
func New(store storage.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// ToggleFavourite flips the favourite flag for item, creating its record
// if needed, and returns the new state.
func (s *Service) ToggleFavourite(item models.Item) (bool, error) {
	now := s.now()
	record, err := s.store.UpdateRecord(item, func(r *models.Record) {
		r.SetFavourite(!r.IsFavourite, now)
	})
	if err != nil {
		return false, fmt.Errorf("toggle favourite %s: %w", item.ID, err)
	}

	s.logger.Debug("toggled favourite", "item", item.ID, "favourite", record.IsFavourite)
	return record.IsFavourite, nil
}

// IsFavourite reports whether the item with id is a favourite. Unknown
// items and read failures report false.
func (s *Service) IsFavourite(id string) bool {
	record, err := s.store.GetRecord(id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read favourite state", "item", id, "err", err)
		}
		return false
	}
	return record.IsFavourite
}

// IsItemFavourite is IsFavourite for an item value.
func (s *Service) IsItemFavourite(item models.Item) bool {
	return s.IsFavourite(item.ID)
}

// Favourites returns favourite items, most recently favourited first.
func (s *Service) Favourites() ([]models.Item, error) {
	records, err := s.FavouriteRecords()
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(records))
	for _, r := range records {
		items = append(items, r.ToItem())
	}
	return items, nil
}

// FavouriteRecords returns favourite records with their timestamps.
func (s *Service) FavouriteRecords() ([]*models.Record, error) {
	records, err := s.store.ListFavourites()
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	return records, nil
}

// MarkAsViewed stamps item as viewed now, creating its record if needed.
func (s *Service) MarkAsViewed(item models.Item) error {
	now := s.now()
	if _, err := s.store.UpdateRecord(item, func(r *models.Record) {
		r.MarkViewed(now)
	}); err != nil {
		return fmt.Errorf("mark viewed %s: %w", item.ID, err)
	}

	s.logger.Debug("marked viewed", "item", item.ID)
	return nil
}

// RecentlyViewed returns viewed records, newest first. A non-positive
// limit returns all of them.
func (s *Service) RecentlyViewed(limit int) ([]*models.Record, error) {
	records, err := s.store.ListViewed(limit)
	if err != nil {
		return nil, fmt.Errorf("list viewed: %w", err)
	}
	return records, nil
}
