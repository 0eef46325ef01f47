// ABOUTME: Location model with normalisation of legacy and current JSON shapes
// ABOUTME: Legacy locality/state fields decode into the canonical name/region form

package models

import (
	"encoding/json"
	"strings"
)

// Location is where an item was found or made.
// Latitude and Longitude are either both set or both nil.
type Location struct {
	Name      *string  `json:"name,omitempty"`
	Region    *string  `json:"region,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	ShowOnMap bool     `json:"showOnMap"`
}

// locationWire accepts both field sets published by the feed over time.
type locationWire struct {
	Name      *string  `json:"name"`
	Region    *string  `json:"region"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ShowOnMap *bool    `json:"showOnMap"`

	// Legacy collection API fields
	Locality *string `json:"locality"`
	State    *string `json:"state"`
	Country  *string `json:"country"`
}

// UnmarshalJSON decodes either location shape into the canonical form.
func (l *Location) UnmarshalJSON(data []byte) error {
	var w locationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = w.normalize()
	return nil
}

// normalize keeps a present name as is, even when empty. Legacy
// locality and state only fill in when the feed sent no name at all.
func (w locationWire) normalize() Location {
	loc := Location{Name: w.Name, Region: w.Region}
	if w.Name == nil {
		loc.Name = w.Locality
		loc.Region = firstNonNil(w.Region, w.State)
	}
	if w.Latitude != nil && w.Longitude != nil {
		loc.Latitude = w.Latitude
		loc.Longitude = w.Longitude
	}
	if w.ShowOnMap != nil {
		loc.ShowOnMap = *w.ShowOnMap
	}
	return loc
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ShouldShowOnMap reports the feed's map flag. Callers placing a pin
// still need HasCoordinates.
func (l Location) ShouldShowOnMap() bool {
	return l.ShowOnMap
}

// DisplayName renders "name, region", falling back to whichever is known.
func (l Location) DisplayName() string {
	var parts []string
	if l.Name != nil {
		parts = append(parts, *l.Name)
	}
	if l.Region != nil {
		parts = append(parts, *l.Region)
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, ", ")
}
