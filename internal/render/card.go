// ABOUTME: Builds and renders the Markdown card for a single item
// ABOUTME: Uses glamour for terminal output and go-humanize for relative times

package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/harper/curio/internal/models"
)

// ItemMarkdown returns a Markdown card for item. record, when present,
// contributes favourite and viewed state.
func ItemMarkdown(item models.Item, record *models.Record, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", item.Title)

	meta := []string{item.DisplayDateLabel(now)}
	if item.IsMineralMonday() {
		meta = append(meta, "Mineral Monday")
	}
	if record != nil && record.IsFavourite {
		meta = append(meta, "★ Favourite")
	}
	fmt.Fprintf(&b, "*%s*\n\n", strings.Join(meta, " · "))

	if summary := TextToMarkdown(item.Summary); summary != "" {
		fmt.Fprintf(&b, "%s\n\n", summary)
	}

	if item.FunFact != nil {
		if fact := TextToMarkdown(*item.FunFact); fact != "" {
			fmt.Fprintf(&b, "> **Did you know?** %s\n\n", fact)
		}
	}

	if loc := item.Location; loc != nil {
		fmt.Fprintf(&b, "**Location:** %s", loc.DisplayName())
		if loc.ShouldShowOnMap() && loc.HasCoordinates() {
			fmt.Fprintf(&b, " (%.4f, %.4f)", *loc.Latitude, *loc.Longitude)
		}
		b.WriteString("\n\n")
	}

	if len(item.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(item.Tags, ", "))
	}

	fmt.Fprintf(&b, "**Image:** %s\n\n", item.ImageURL)
	fmt.Fprintf(&b, "**Credit:** %s\n\n", item.AttributionText())
	fmt.Fprintf(&b, "[View in the collection](%s)\n", item.MuseumURL)

	if record != nil {
		var state []string
		if record.FavouritedAt != nil {
			state = append(state, "favourited "+humanize.RelTime(*record.FavouritedAt, now, "ago", "from now"))
		}
		if record.ViewedAt != nil {
			state = append(state, "viewed "+humanize.RelTime(*record.ViewedAt, now, "ago", "from now"))
		}
		if len(state) > 0 {
			fmt.Fprintf(&b, "\n*%s*\n", strings.Join(state, ", "))
		}
	}

	return b.String()
}

// Markdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func Markdown(markdown string) string {
	rendered, err := glamour.Render(markdown, "dark")
	if err != nil {
		return markdown
	}
	return rendered
}

// ItemLine is the one-line list form of an item.
func ItemLine(item models.Item, now time.Time) string {
	marker := " "
	if item.IsMineralMonday() {
		marker = "◆"
	}
	return fmt.Sprintf("%s %-10s  %s  [%s]", marker, item.DisplayDateLabel(now), item.Title, item.ID)
}

// Age describes how long ago t was, e.g. "3 minutes ago".
func Age(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
