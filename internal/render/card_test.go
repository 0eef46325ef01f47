// ABOUTME: Tests for item card construction and list lines
// ABOUTME: Checks optional sections, user state and relative labels

package render

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/harper/curio/internal/models"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func cardItem() models.Item {
	return models.Item{
		ID:           "items/123456",
		DisplayDate:  "2026-01-10",
		Title:        "Pyrite Crystal from Ballarat",
		Summary:      "A stunning specimen of <em>pyrite</em>.",
		FunFact:      strPtr("Pyrite sparks when struck."),
		ImageURL:     "https://example.com/image.webp",
		ThumbnailURL: "https://example.com/thumb.webp",
		Credit:       "Museums Victoria",
		Licence:      "CC BY",
		MuseumURL:    "https://collections.example.com/items/123456",
		Location: &models.Location{
			Name:      strPtr("Ballarat"),
			Region:    strPtr("Central Highlands"),
			Latitude:  floatPtr(-37.5622),
			Longitude: floatPtr(143.8503),
			ShowOnMap: true,
		},
		Tags:          []string{"geology", "mineral-monday"},
		MineralMonday: true,
	}
}

func TestItemMarkdown(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)
	md := ItemMarkdown(cardItem(), nil, now)

	for _, want := range []string{
		"# Pyrite Crystal from Ballarat",
		"*Today · Mineral Monday*",
		"*pyrite*",
		"**Did you know?** Pyrite sparks when struck.",
		"**Location:** Ballarat, Central Highlands (-37.5622, 143.8503)",
		"**Credit:** Museums Victoria / CC BY",
		"(https://collections.example.com/items/123456)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("card missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Favourite") {
		t.Errorf("no record means no favourite marker:\n%s", md)
	}
}

func TestItemMarkdownOptionalSections(t *testing.T) {
	item := cardItem()
	item.FunFact = nil
	item.Location = nil
	item.Tags = nil
	item.MineralMonday = false

	md := ItemMarkdown(item, nil, time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local))

	for _, unwanted := range []string{"Did you know", "Location", "Tags", "Mineral Monday"} {
		if strings.Contains(md, unwanted) {
			t.Errorf("card should not contain %q:\n%s", unwanted, md)
		}
	}
	if !strings.Contains(md, "10 Jan 2026") {
		t.Errorf("expected medium date label:\n%s", md)
	}
}

func TestItemMarkdownMapFlagWithoutCoordinates(t *testing.T) {
	item := cardItem()
	item.Location.Latitude = nil
	item.Location.Longitude = nil

	md := ItemMarkdown(item, nil, time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local))

	if !strings.Contains(md, "**Location:** Ballarat, Central Highlands\n") {
		t.Errorf("expected location without coordinates:\n%s", md)
	}
}

func TestItemMarkdownUserState(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)
	record := models.NewRecord(cardItem())
	record.SetFavourite(true, now.Add(-3*time.Hour))
	record.MarkViewed(now.Add(-time.Minute))

	md := ItemMarkdown(cardItem(), record, now)

	for _, want := range []string{"★ Favourite", "favourited 3 hours ago", "viewed 1 minute ago"} {
		if !strings.Contains(md, want) {
			t.Errorf("card missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownRenders(t *testing.T) {
	out := ansiPattern.ReplaceAllString(Markdown("# Heading\n\nBody text."), "")
	for _, want := range []string{"Heading", "Body", "text."} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output lost %q:\n%s", want, out)
		}
	}
}

func TestItemLine(t *testing.T) {
	now := time.Date(2026, 1, 11, 8, 0, 0, 0, time.Local)
	line := ItemLine(cardItem(), now)

	if !strings.HasPrefix(line, "◆ Yesterday") {
		t.Errorf("unexpected line prefix: %q", line)
	}
	if !strings.HasSuffix(line, "[items/123456]") {
		t.Errorf("unexpected line suffix: %q", line)
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	if got := Age(now.Add(-2*time.Hour), now); got != "2 hours ago" {
		t.Errorf("Age = %q", got)
	}
}
