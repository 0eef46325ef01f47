// ABOUTME: Test suite for Location decoding and display helpers
// ABOUTME: Ensures legacy and current shapes normalise to one canonical form

package models

import (
	"encoding/json"
	"testing"
)

func TestLocation_UnmarshalCurrent(t *testing.T) {
	data := `{"name":"Ballarat","region":"Central Highlands","latitude":-37.5622,"longitude":143.8503,"showOnMap":true}`

	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got := loc.DisplayName(); got != "Ballarat, Central Highlands" {
		t.Errorf("DisplayName() = %q", got)
	}
	if !loc.HasCoordinates() || !loc.ShouldShowOnMap() {
		t.Error("expected coordinates and map pin")
	}
}

func TestLocation_UnmarshalLegacy(t *testing.T) {
	data := `{"locality":"Bendigo","state":"Victoria","country":"Australia"}`

	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if loc.Name == nil || *loc.Name != "Bendigo" {
		t.Errorf("expected locality to become name, got %v", loc.Name)
	}
	if loc.Region == nil || *loc.Region != "Victoria" {
		t.Errorf("expected state to become region, got %v", loc.Region)
	}
	if loc.ShowOnMap {
		t.Error("expected showOnMap to default to false")
	}
}

func TestLocation_RegionPreferredOverState(t *testing.T) {
	data := `{"locality":"Bendigo","region":"Goldfields","state":"Victoria"}`

	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := loc.DisplayName(); got != "Bendigo, Goldfields" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestLocation_CoordinatesArePaired(t *testing.T) {
	data := `{"name":"Somewhere","latitude":-37.0,"showOnMap":true}`

	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if loc.Latitude != nil || loc.Longitude != nil {
		t.Error("expected a lone latitude to be dropped")
	}
	if !loc.ShouldShowOnMap() {
		t.Error("expected the map flag to be kept without coordinates")
	}
	if loc.HasCoordinates() {
		t.Error("expected no coordinates")
	}
}

func TestLocation_EmptyNameIsKept(t *testing.T) {
	data := `{"name":"","locality":"Bendigo","state":"Victoria"}`

	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if loc.Name == nil || *loc.Name != "" {
		t.Errorf("expected the empty name to win over locality, got %v", loc.Name)
	}
	if loc.Region != nil {
		t.Errorf("expected state to be ignored when a name is present, got %v", *loc.Region)
	}
	if got := loc.DisplayName(); got != "" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestLocation_NamePresentIgnoresState(t *testing.T) {
	data := `{"name":"Mildura","state":"Victoria"}`

	var loc Location
	if err := json.Unmarshal([]byte(data), &loc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := loc.DisplayName(); got != "Mildura" {
		t.Errorf("DisplayName() = %q", got)
	}
}

func TestLocation_DisplayNameFallbacks(t *testing.T) {
	if got := (Location{}).DisplayName(); got != "Unknown" {
		t.Errorf("empty location: got %q", got)
	}
	if got := (Location{Region: strPtr("Gippsland")}).DisplayName(); got != "Gippsland" {
		t.Errorf("region only: got %q", got)
	}
}

func TestLocation_RoundTripCanonical(t *testing.T) {
	in := Location{Name: strPtr("Ballarat"), Latitude: floatPtr(-37.5), Longitude: floatPtr(143.8), ShowOnMap: true}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var out Location
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out.DisplayName() != "Ballarat" || !out.ShouldShowOnMap() {
		t.Errorf("canonical form did not survive encoding: %+v", out)
	}
}
