// ABOUTME: Test suite for Record creation, display refresh and user state
// ABOUTME: Ensures refreshes never touch favourite or viewed fields

package models

import (
	"testing"
	"time"
)

func TestNewRecord(t *testing.T) {
	item := newTestItem("a", "2026-01-10")
	item.FunFact = strPtr("fun")
	item.Tags = []string{"geology"}
	item.Location = &Location{Name: strPtr("Ballarat"), Latitude: floatPtr(-37.5), Longitude: floatPtr(143.8), ShowOnMap: true}

	r := NewRecord(item)

	if r.ItemID != "a" || r.Title != item.Title || r.DisplayDate != "2026-01-10" {
		t.Errorf("display fields not copied: %+v", r)
	}
	if r.LocationName == nil || *r.LocationName != "Ballarat" || !r.LocationShowOnMap {
		t.Errorf("location not flattened: %+v", r)
	}
	if r.IsFavourite || r.FavouritedAt != nil || r.ViewedAt != nil {
		t.Error("expected default user state")
	}

	item.Tags[0] = "mutated"
	if r.Tags[0] != "geology" {
		t.Error("record tags must not alias the item's slice")
	}
}

func TestRecord_ApplyDisplayKeepsUserState(t *testing.T) {
	r := NewRecord(newTestItem("a", "2026-01-10"))
	now := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	r.SetFavourite(true, now)
	r.MarkViewed(now)

	updated := newTestItem("a", "2026-01-10")
	updated.Title = "New title"
	updated.AspectRatio = floatPtr(2)
	r.ApplyDisplay(updated)

	if r.Title != "New title" || r.AspectRatio == nil || *r.AspectRatio != 2 {
		t.Errorf("display fields not refreshed: %+v", r)
	}
	if !r.IsFavourite || r.FavouritedAt == nil || !r.FavouritedAt.Equal(now) {
		t.Error("favourite state changed by refresh")
	}
	if r.ViewedAt == nil || !r.ViewedAt.Equal(now) {
		t.Error("viewed state changed by refresh")
	}
}

func TestRecord_SetFavourite(t *testing.T) {
	r := NewRecord(newTestItem("a", "2026-01-10"))
	now := time.Now()

	r.SetFavourite(true, now)
	if !r.IsFavourite || r.FavouritedAt == nil {
		t.Error("expected favourite with timestamp")
	}

	r.SetFavourite(false, now)
	if r.IsFavourite || r.FavouritedAt != nil {
		t.Error("expected timestamp cleared with flag")
	}
}

func TestRecord_ToItem(t *testing.T) {
	item := newTestItem("a", "2026-01-10")
	item.MineralMonday = true
	item.Location = &Location{Region: strPtr("Gippsland")}

	got := NewRecord(item).ToItem()
	if got.ID != "a" || got.Title != item.Title || !got.IsMineralMonday() {
		t.Errorf("unexpected item: %+v", got)
	}
	if got.Location == nil || got.Location.DisplayName() != "Gippsland" {
		t.Errorf("expected location to be rebuilt, got %+v", got.Location)
	}

	noLoc := NewRecord(newTestItem("b", "2026-01-10")).ToItem()
	if noLoc.Location != nil {
		t.Error("expected no location when none was stored")
	}
}
