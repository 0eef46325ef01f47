// ABOUTME: Tests for date key helpers
// ABOUTME: Verifies parsing strictness, whole-day differences and relative labels

package timeutil

import (
	"testing"
	"time"
)

func TestStartOfToday(t *testing.T) {
	result := StartOfToday()
	now := time.Now()

	if result.Year() != now.Year() || result.Month() != now.Month() || result.Day() != now.Day() {
		t.Errorf("StartOfToday() date mismatch: got %v, expected date %v", result, now)
	}

	if result.Hour() != 0 || result.Minute() != 0 || result.Second() != 0 {
		t.Errorf("StartOfToday() should be midnight, got %v", result)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.January, 5, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2026-01-05" {
		t.Errorf("FormatDate() = %q, want %q", got, "2026-01-05")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2026-01-10", true},
		{"2024-02-29", true},
		{"2026-1-10", false},
		{"2026-01-1", false},
		{"2026-13-01", false},
		{"2023-02-29", false},
		{"", false},
		{"not a date", false},
		{"2026-01-10T00:00:00Z", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := ParseDate(tt.input, time.UTC)
			if ok != tt.ok {
				t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if IsDateKey(tt.input) != tt.ok {
				t.Errorf("IsDateKey(%q) = %v, want %v", tt.input, !tt.ok, tt.ok)
			}
		})
	}
}

func TestParseDate_UsesLocation(t *testing.T) {
	loc := time.FixedZone("AEST", 10*60*60)
	d, ok := ParseDate("2026-03-01", loc)
	if !ok {
		t.Fatal("expected date to parse")
	}
	if d.Location() != loc || d.Hour() != 0 {
		t.Errorf("expected midnight in %v, got %v", loc, d)
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	if got := DaysBetween(base, base.Add(23*time.Hour)); got != 0 {
		t.Errorf("same day: got %d, want 0", got)
	}
	if got := DaysBetween(base, base.AddDate(0, 0, 13)); got != 13 {
		t.Errorf("13 days: got %d, want 13", got)
	}
	if got := DaysBetween(base, base.AddDate(0, 0, -2)); got != -2 {
		t.Errorf("future: got %d, want -2", got)
	}
}

func TestRelativeDateLabel(t *testing.T) {
	now := time.Date(2026, time.January, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		key  string
		want string
	}{
		{"2026-01-10", "Today"},
		{"2026-01-09", "Yesterday"},
		{"2025-12-25", "25 Dec 2025"},
		{"someday", "someday"},
	}

	for _, tt := range tests {
		if got := RelativeDateLabel(tt.key, now); got != tt.want {
			t.Errorf("RelativeDateLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2026, time.January, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"today", "2026-01-10", true},
		{"", "2026-01-10", true},
		{"Yesterday", "2026-01-09", true},
		{" 2025-12-25 ", "2025-12-25", true},
		{"2025-12", "", false},
		{"not-a-date", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDay(tt.input, now)
		if ok != tt.ok {
			t.Errorf("ParseDay(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && FormatDate(got) != tt.want {
			t.Errorf("ParseDay(%q) = %s, want %s", tt.input, FormatDate(got), tt.want)
		}
		if ok && (got.Hour() != 0 || got.Location() != time.Local) {
			t.Errorf("ParseDay(%q) = %v, want local midnight", tt.input, got)
		}
	}
}
