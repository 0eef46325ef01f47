// ABOUTME: Strict JSON decoding of the published feed document
// ABOUTME: Rejects payloads missing required item fields or carrying duplicate item ids

package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/harper/curio/internal/models"
)

// ErrInvalidResponse marks a body that is not a usable feed document.
var ErrInvalidResponse = errors.New("invalid feed response")

type documentWire struct {
	Version     *string     `json:"version"`
	GeneratedAt *string     `json:"generatedAt"`
	Items       *[]itemWire `json:"items"`
}

type itemWire struct {
	ID            *string          `json:"id"`
	DisplayDate   *string          `json:"displayDate"`
	Title         *string          `json:"title"`
	Summary       *string          `json:"summary"`
	FunFact       *string          `json:"funFact"`
	ImageURL      *string          `json:"imageUrl"`
	ThumbnailURL  *string          `json:"thumbnailUrl"`
	AspectRatio   *float64         `json:"aspectRatio"`
	Credit        *string          `json:"credit"`
	Licence       *string          `json:"licence"`
	MuseumURL     *string          `json:"museumUrl"`
	Location      *models.Location `json:"location"`
	Tags          *[]string        `json:"tags"`
	MineralMonday *bool            `json:"mineralMonday"`
}

// Parse decodes a feed document. Any schema violation is reported as
// ErrInvalidResponse with the offending field.
func Parse(data []byte) (*models.Document, error) {
	var wire documentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if wire.Version == nil {
		return nil, invalid("missing version")
	}
	if wire.GeneratedAt == nil {
		return nil, invalid("missing generatedAt")
	}
	if wire.Items == nil {
		return nil, invalid("missing items")
	}

	doc := &models.Document{
		Version:     *wire.Version,
		GeneratedAt: *wire.GeneratedAt,
		Items:       make([]models.Item, 0, len(*wire.Items)),
	}

	seen := make(map[string]bool, len(*wire.Items))
	for i, w := range *wire.Items {
		item, err := w.toModel()
		if err != nil {
			return nil, invalid("item %d: %v", i, err)
		}
		if seen[item.ID] {
			return nil, invalid("item %d: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = true
		doc.Items = append(doc.Items, item)
	}

	return doc, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...))
}

func (w itemWire) toModel() (models.Item, error) {
	required := []struct {
		name  string
		value *string
	}{
		{"id", w.ID},
		{"displayDate", w.DisplayDate},
		{"title", w.Title},
		{"summary", w.Summary},
		{"imageUrl", w.ImageURL},
		{"thumbnailUrl", w.ThumbnailURL},
		{"credit", w.Credit},
		{"licence", w.Licence},
		{"museumUrl", w.MuseumURL},
	}
	for _, field := range required {
		if field.value == nil {
			return models.Item{}, fmt.Errorf("missing %s", field.name)
		}
	}
	if strings.TrimSpace(*w.ID) == "" {
		return models.Item{}, errors.New("empty id")
	}
	if w.Tags == nil {
		return models.Item{}, errors.New("missing tags")
	}
	if w.MineralMonday == nil {
		return models.Item{}, errors.New("missing mineralMonday")
	}

	for _, u := range []struct {
		name  string
		value string
	}{
		{"imageUrl", *w.ImageURL},
		{"thumbnailUrl", *w.ThumbnailURL},
		{"museumUrl", *w.MuseumURL},
	} {
		if err := validateURL(u.value); err != nil {
			return models.Item{}, fmt.Errorf("%s: %w", u.name, err)
		}
	}

	return models.Item{
		ID:            *w.ID,
		DisplayDate:   *w.DisplayDate,
		Title:         *w.Title,
		Summary:       *w.Summary,
		FunFact:       w.FunFact,
		ImageURL:      *w.ImageURL,
		ThumbnailURL:  *w.ThumbnailURL,
		AspectRatio:   w.AspectRatio,
		Credit:        *w.Credit,
		Licence:       *w.Licence,
		MuseumURL:     *w.MuseumURL,
		Location:      w.Location,
		Tags:          *w.Tags,
		MineralMonday: *w.MineralMonday,
	}, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("empty URL")
	}
	if _, err := url.Parse(raw); err != nil {
		return err
	}
	return nil
}
