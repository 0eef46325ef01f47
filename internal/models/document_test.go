// ABOUTME: Test suite for Document date resolution and recent item queries
// ABOUTME: Covers exact match, fallback to the latest past item and the recent window

package models

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s+" 12:00", time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDocument_ItemForDate_ExactMatch(t *testing.T) {
	doc := &Document{Items: []Item{
		newTestItem("a", "2026-01-10"),
		newTestItem("b", "2026-01-12"),
	}}

	item, ok := doc.ItemForDate(day("2026-01-12"))
	if !ok || item.ID != "b" {
		t.Errorf("expected item b, got %q (ok=%v)", item.ID, ok)
	}
}

func TestDocument_ItemForDate_FallsBackToLatestPast(t *testing.T) {
	doc := &Document{Items: []Item{
		newTestItem("later", "2026-01-12"),
		newTestItem("old", "2026-01-01"),
		newTestItem("recent", "2026-01-10"),
	}}

	item, ok := doc.ItemForDate(day("2026-01-11"))
	if !ok || item.ID != "recent" {
		t.Errorf("expected item recent, got %q (ok=%v)", item.ID, ok)
	}
}

func TestDocument_ItemForDate_DuplicatesFirstWins(t *testing.T) {
	doc := &Document{Items: []Item{
		newTestItem("first", "2026-01-10"),
		newTestItem("second", "2026-01-10"),
	}}

	if item, _ := doc.ItemForDate(day("2026-01-10")); item.ID != "first" {
		t.Errorf("exact: expected first, got %q", item.ID)
	}
	if item, _ := doc.ItemForDate(day("2026-01-15")); item.ID != "first" {
		t.Errorf("fallback: expected first, got %q", item.ID)
	}
}

func TestDocument_ItemForDate_NotFound(t *testing.T) {
	doc := &Document{Items: []Item{newTestItem("future", "2026-02-01")}}

	if _, ok := doc.ItemForDate(day("2026-01-11")); ok {
		t.Error("expected no item when every item is in the future")
	}

	empty := &Document{}
	if _, ok := empty.ItemForDate(day("2026-01-11")); ok {
		t.Error("expected no item for an empty document")
	}
}

func TestDocument_ItemForDate_SkipsMalformedInFallback(t *testing.T) {
	doc := &Document{Items: []Item{
		newTestItem("bad", "2026-1-9"),
		newTestItem("good", "2026-01-05"),
	}}

	// "2026-1-9" sorts after "2026-01-05" as a string but is not a real key.
	item, ok := doc.ItemForDate(day("2026-01-11"))
	if !ok || item.ID != "good" {
		t.Errorf("expected good, got %q (ok=%v)", item.ID, ok)
	}
}

func TestDocument_ItemForDate_Property(t *testing.T) {
	doc := &Document{Items: []Item{
		newTestItem("a", "2026-01-03"),
		newTestItem("b", "2026-01-07"),
		newTestItem("c", "2026-01-07"),
		newTestItem("d", "2026-01-20"),
	}}

	start := day("2025-12-30")
	for i := 0; i < 30; i++ {
		d := start.AddDate(0, 0, i)
		key := d.Format("2006-01-02")
		item, ok := doc.ItemForDate(d)

		var want *Item
		for j := range doc.Items {
			candidate := doc.Items[j]
			if candidate.DisplayDate > key {
				continue
			}
			if want == nil || candidate.DisplayDate > want.DisplayDate {
				want = &doc.Items[j]
			}
		}

		if want == nil {
			if ok {
				t.Errorf("%s: expected nothing, got %q", key, item.ID)
			}
			continue
		}
		if !ok || item.ID != want.ID {
			t.Errorf("%s: expected %q, got %q (ok=%v)", key, want.ID, item.ID, ok)
		}
	}
}

func TestDocument_RecentItems(t *testing.T) {
	now := time.Date(2026, time.January, 20, 18, 0, 0, 0, time.UTC)
	doc := &Document{Items: []Item{
		newTestItem("old", "2026-01-06"),       // 14 days ago, excluded
		newTestItem("edge", "2026-01-07"),      // 13 days ago, included
		newTestItem("today", "2026-01-20"),     // included
		newTestItem("future", "2026-01-21"),    // excluded
		newTestItem("garbage", "yesterday"),    // excluded
		newTestItem("mid", "2026-01-15"),       // included
		newTestItem("mid-dup", "2026-01-15"),   // included, after mid
		newTestItem("yesterday", "2026-01-19"), // included
	}}

	got := doc.RecentItems(14, now)
	want := []string{"today", "yesterday", "mid", "mid-dup", "edge"}

	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(got), ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i].ID)
		}
	}
}

func TestDocument_RecentItems_ZeroDays(t *testing.T) {
	now := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)
	doc := &Document{Items: []Item{newTestItem("today", "2026-01-20")}}

	if got := doc.RecentItems(0, now); len(got) != 0 {
		t.Errorf("expected no items for a zero-day window, got %v", ids(got))
	}
}

func TestDocument_FindItem(t *testing.T) {
	doc := &Document{Items: []Item{newTestItem("a", "2026-01-20")}}

	if _, ok := doc.FindItem("a"); !ok {
		t.Error("expected to find item a")
	}
	if _, ok := doc.FindItem("z"); ok {
		t.Error("expected not to find item z")
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
