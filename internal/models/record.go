// ABOUTME: Record model for the durable per-item store entry
// ABOUTME: Holds a copy of the item's display fields plus user-owned favourite and viewed state

package models

import "time"

// Record is the locally persisted copy of an Item overlaid with user state.
// Feed refreshes only touch display fields; user actions only touch
// IsFavourite, FavouritedAt and ViewedAt.
type Record struct {
	ItemID       string
	DisplayDate  string
	Title        string
	Summary      string
	FunFact      *string
	ImageURL     string
	ThumbnailURL string
	AspectRatio  *float64
	Credit       string
	Licence      string
	MuseumURL    string

	// Location, flattened
	LocationName      *string
	LocationRegion    *string
	LocationLatitude  *float64
	LocationLongitude *float64
	LocationShowOnMap bool

	Tags          []string
	MineralMonday bool

	// User state
	IsFavourite  bool
	FavouritedAt *time.Time
	ViewedAt     *time.Time
}

// NewRecord copies every field of item into a record with default user state.
func NewRecord(item Item) *Record {
	r := &Record{
		ItemID:        item.ID,
		DisplayDate:   item.DisplayDate,
		MuseumURL:     item.MuseumURL,
		Tags:          append([]string(nil), item.Tags...),
		MineralMonday: item.MineralMonday,
	}
	if loc := item.Location; loc != nil {
		r.LocationName = loc.Name
		r.LocationRegion = loc.Region
		r.LocationLatitude = loc.Latitude
		r.LocationLongitude = loc.Longitude
		r.LocationShowOnMap = loc.ShowOnMap
	}
	r.ApplyDisplay(item)
	return r
}

// ApplyDisplay overwrites the refreshable display fields from item.
// User state is left untouched.
func (r *Record) ApplyDisplay(item Item) {
	r.Title = item.Title
	r.Summary = item.Summary
	r.FunFact = item.FunFact
	r.ImageURL = item.ImageURL
	r.ThumbnailURL = item.ThumbnailURL
	r.AspectRatio = item.AspectRatio
	r.Credit = item.Credit
	r.Licence = item.Licence
}

// SetFavourite sets the favourite flag, keeping FavouritedAt in lockstep.
func (r *Record) SetFavourite(favourite bool, now time.Time) {
	r.IsFavourite = favourite
	if favourite {
		r.FavouritedAt = &now
	} else {
		r.FavouritedAt = nil
	}
}

// MarkViewed records now as the last time the item was viewed.
func (r *Record) MarkViewed(now time.Time) {
	r.ViewedAt = &now
}

// ToItem rebuilds an Item from the stored copy. A location is only
// produced when a name or region was stored.
func (r *Record) ToItem() Item {
	item := Item{
		ID:            r.ItemID,
		DisplayDate:   r.DisplayDate,
		Title:         r.Title,
		Summary:       r.Summary,
		FunFact:       r.FunFact,
		ImageURL:      r.ImageURL,
		ThumbnailURL:  r.ThumbnailURL,
		AspectRatio:   r.AspectRatio,
		Credit:        r.Credit,
		Licence:       r.Licence,
		MuseumURL:     r.MuseumURL,
		Tags:          append([]string(nil), r.Tags...),
		MineralMonday: r.MineralMonday,
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if r.LocationName != nil || r.LocationRegion != nil {
		loc := &Location{
			Name:      r.LocationName,
			Region:    r.LocationRegion,
			ShowOnMap: r.LocationShowOnMap,
		}
		if r.LocationLatitude != nil && r.LocationLongitude != nil {
			loc.Latitude = r.LocationLatitude
			loc.Longitude = r.LocationLongitude
		}
		item.Location = loc
	}
	return item
}
