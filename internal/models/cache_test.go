// ABOUTME: Test suite for CacheEntry validity and item blob handling
// ABOUTME: Verifies the validity window boundary and corrupt blob degradation

package models

import (
	"testing"
	"time"
)

func TestNewCacheEntry(t *testing.T) {
	doc := &Document{
		Version:     "3.0",
		GeneratedAt: "2026-01-10T00:00:00Z",
		Items:       []Item{newTestItem("a", "2026-01-10")},
	}
	fetchedAt := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)

	entry, err := NewCacheEntry(doc, fetchedAt)
	if err != nil {
		t.Fatalf("NewCacheEntry failed: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected entry ID to be generated")
	}
	if !entry.FetchedAt.Equal(fetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", entry.FetchedAt, fetchedAt)
	}

	got := entry.Document()
	if got.Version != "3.0" || got.GeneratedAt != doc.GeneratedAt {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "a" {
		t.Errorf("items mismatch: %v", ids(got.Items))
	}
}

func TestCacheEntry_IsValid(t *testing.T) {
	fetchedAt := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	entry := &CacheEntry{FetchedAt: fetchedAt}

	if !entry.IsValid(fetchedAt, 0) {
		t.Error("expected entry to be valid at fetch time")
	}
	if !entry.IsValid(fetchedAt.Add(59*time.Minute), 0) {
		t.Error("expected entry to be valid within the hour")
	}
	if entry.IsValid(fetchedAt.Add(time.Hour), 0) {
		t.Error("expected entry to expire at exactly one hour")
	}
	if entry.IsValid(fetchedAt.Add(48*time.Hour), 0) {
		t.Error("expected entry to stay expired")
	}
	if !entry.IsValid(fetchedAt.Add(90*time.Minute), 2*time.Hour) {
		t.Error("expected custom window to be honoured")
	}
}

func TestCacheEntry_IsValidMonotonic(t *testing.T) {
	fetchedAt := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	entry := &CacheEntry{FetchedAt: fetchedAt}

	expired := false
	for offset := time.Duration(0); offset <= 3*time.Hour; offset += 7 * time.Minute {
		valid := entry.IsValid(fetchedAt.Add(offset), DefaultCacheValidity)
		if expired && valid {
			t.Fatalf("entry became valid again at +%v", offset)
		}
		if !valid {
			expired = true
		}
	}
	if !expired {
		t.Error("expected entry to expire")
	}
}

func TestCacheEntry_CorruptItemsDegradeToEmpty(t *testing.T) {
	entry := &CacheEntry{
		Version:     "3.0",
		GeneratedAt: "x",
		FetchedAt:   time.Now(),
		ItemsData:   []byte("{not json"),
	}

	if _, err := entry.Items(); err == nil {
		t.Error("expected Items() to report the decode error")
	}

	doc := entry.Document()
	if doc.Version != "3.0" {
		t.Errorf("expected metadata to survive, got %+v", doc)
	}
	if len(doc.Items) != 0 {
		t.Errorf("expected no items, got %d", len(doc.Items))
	}
	if !entry.IsValid(time.Now(), 0) {
		t.Error("a corrupt blob must not affect validity")
	}
}
