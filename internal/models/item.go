// ABOUTME: Item model representing one catalog entry scheduled for a display date
// ABOUTME: Immutable once fetched; derived properties cover layout, tags and attribution

package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/harper/curio/internal/timeutil"
)

// MineralMondayTag is the reserved tag equivalent to the MineralMonday flag.
const MineralMondayTag = "mineral-monday"

// Item is a single entry of the remote feed.
type Item struct {
	ID            string    `json:"id"`
	DisplayDate   string    `json:"displayDate"` // YYYY-MM-DD scheduling key
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	FunFact       *string   `json:"funFact,omitempty"`
	ImageURL      string    `json:"imageUrl"`
	ThumbnailURL  string    `json:"thumbnailUrl"`
	AspectRatio   *float64  `json:"aspectRatio,omitempty"`
	Credit        string    `json:"credit"`
	Licence       string    `json:"licence"`
	MuseumURL     string    `json:"museumUrl"`
	Location      *Location `json:"location,omitempty"`
	Tags          []string  `json:"tags"`
	MineralMonday bool      `json:"mineralMonday"`
}

// IsMineralMonday reports whether the item carries the flag or the reserved tag.
func (i Item) IsMineralMonday() bool {
	return i.MineralMonday || slices.Contains(i.Tags, MineralMondayTag)
}

// Ratio returns the aspect ratio, defaulting to 1.0 (square) when absent or not positive.
func (i Item) Ratio() float64 {
	if i.AspectRatio == nil || *i.AspectRatio <= 0 {
		return 1.0
	}
	return *i.AspectRatio
}

// IsLandscape reports whether the image is wider than tall.
func (i Item) IsLandscape() bool {
	return i.Ratio() > 1.0
}

// IsPortrait reports whether the image is taller than wide.
func (i Item) IsPortrait() bool {
	return i.Ratio() < 1.0
}

// DisplayTime parses DisplayDate as midnight in loc.
func (i Item) DisplayTime(loc *time.Location) (time.Time, bool) {
	return timeutil.ParseDate(i.DisplayDate, loc)
}

// IsToday reports whether the item is scheduled for now's calendar day.
func (i Item) IsToday(now time.Time) bool {
	return i.DisplayDate == timeutil.FormatDate(now) && timeutil.IsDateKey(i.DisplayDate)
}

// DisplayDateLabel returns "Today", "Yesterday" or a medium date.
func (i Item) DisplayDateLabel(now time.Time) string {
	return timeutil.RelativeDateLabel(i.DisplayDate, now)
}

// AttributionText joins credit and licence for display.
func (i Item) AttributionText() string {
	return fmt.Sprintf("%s / %s", i.Credit, i.Licence)
}
