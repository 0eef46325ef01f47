// ABOUTME: Date helpers for the feed's YYYY-MM-DD scheduling keys
// ABOUTME: Formats and parses date keys, computes whole-day differences and relative labels

package timeutil

import (
	"strings"
	"time"
)

// DateLayout is the fixed-width, zero-padded layout of an item's display date.
const DateLayout = "2006-01-02"

// MediumDateLayout is used for dates that are neither today nor yesterday.
const MediumDateLayout = "2 Jan 2006"

// StartOfDay returns midnight (00:00:00) of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfToday returns midnight (00:00:00) of the current day in local time
func StartOfToday() time.Time {
	return StartOfDay(time.Now())
}

// FormatDate renders t as a date key in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDateKey reports whether s is a well-formed YYYY-MM-DD date key.
// Only well-formed keys compare correctly as strings.
func IsDateKey(s string) bool {
	_, ok := ParseDate(s, time.UTC)
	return ok
}

// ParseDate parses a date key as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the number of calendar days from one date to another.
// Only the calendar date of each argument matters, so DST shifts never
// produce fractional days.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// RelativeDateLabel returns "Today", "Yesterday" or a medium date for a date
// key, relative to now. Unparseable keys are returned unchanged.
func RelativeDateLabel(key string, now time.Time) string {
	d, ok := ParseDate(key, now.Location())
	if !ok {
		return key
	}
	switch DaysBetween(d, now) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return d.Format(MediumDateLayout)
	}
}

// ParseDay accepts "today", "yesterday" or a date key and returns midnight
// of that day in now's location. Empty input means today.
func ParseDay(s string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return StartOfDay(now), true
	case "yesterday":
		return StartOfDay(now).AddDate(0, 0, -1), true
	}
	return ParseDate(strings.TrimSpace(s), now.Location())
}
