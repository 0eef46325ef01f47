// ABOUTME: Tests for collection text normalisation
// ABOUTME: Validates HTML detection and Markdown conversion

package render

import (
	"strings"
	"testing"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"plain text", "A stunning specimen of pyrite.", false},
		{"angle brackets in prose", "Sizes range 2 < x > 5 cm.", false},
		{"emphasis", "Named for <em>Ballarat</em>.", true},
		{"line break", "Line one<br/>Line two", true},
		{"paragraph", "<p>Paragraph.</p>", true},
		{"link", `See <a href="https://example.com">here</a>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHTML(tt.text); got != tt.expected {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestTextToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "plain text unchanged",
			input:    "  Just plain text here.  ",
			contains: []string{"Just plain text here."},
		},
		{
			name:     "paragraph to text",
			input:    "<p>A paragraph of text.</p>",
			contains: []string{"A paragraph of text."},
			excludes: []string{"<p>", "</p>"},
		},
		{
			name:     "italic to markdown",
			input:    "Collected near <em>Castlemaine</em>.",
			contains: []string{"*Castlemaine*"},
			excludes: []string{"<em>"},
		},
		{
			name:     "link to markdown",
			input:    `<a href="https://example.com">Example</a>`,
			contains: []string{"[Example]", "(https://example.com)"},
			excludes: []string{"<a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TextToMarkdown(tt.input)
			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("TextToMarkdown(%q) = %q, should contain %q", tt.input, result, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(result, s) {
					t.Errorf("TextToMarkdown(%q) = %q, should not contain %q", tt.input, result, s)
				}
			}
		})
	}

	if got := TextToMarkdown(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
