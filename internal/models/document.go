// ABOUTME: Document model for one fetched snapshot of the remote feed
// ABOUTME: Resolves the item for a date and the recent items window without I/O

package models

import (
	"sort"
	"time"

	"github.com/harper/curio/internal/timeutil"
)

// Document is a versioned snapshot of the remote catalog.
// Item order carries no meaning; queries sort as needed.
type Document struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generatedAt"`
	Items       []Item `json:"items"`
}

// ItemForDate returns the item scheduled for d's calendar day.
// An exact match wins (first in list order). Otherwise the item with the
// greatest display date not after d is returned, so a client that missed a
// few refreshes still shows the latest entry it knows about.
func (d *Document) ItemForDate(date time.Time) (Item, bool) {
	target := timeutil.FormatDate(date)

	for _, item := range d.Items {
		if item.DisplayDate == target {
			return item, true
		}
	}

	best := -1
	for i, item := range d.Items {
		// String comparison matches calendar order only for well-formed keys.
		if !timeutil.IsDateKey(item.DisplayDate) || item.DisplayDate > target {
			continue
		}
		if best == -1 || item.DisplayDate > d.Items[best].DisplayDate {
			best = i
		}
	}
	if best == -1 {
		return Item{}, false
	}
	return d.Items[best], true
}

// RecentItems returns items dated within the last days calendar days
// (today included, future excluded), most recent first. Items with
// unparseable dates are skipped; equal dates keep their feed order.
func (d *Document) RecentItems(days int, now time.Time) []Item {
	today := timeutil.StartOfDay(now)

	type dated struct {
		item Item
		at   time.Time
	}
	var matched []dated
	for _, item := range d.Items {
		at, ok := item.DisplayTime(now.Location())
		if !ok {
			continue
		}
		diff := timeutil.DaysBetween(at, today)
		if diff >= 0 && diff < days {
			matched = append(matched, dated{item: item, at: at})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].at.After(matched[j].at)
	})

	items := make([]Item, len(matched))
	for i, m := range matched {
		items[i] = m.item
	}
	return items
}

// FindItem returns the item with the given id.
func (d *Document) FindItem(id string) (Item, bool) {
	for _, item := range d.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
