// ABOUTME: Normalises collection text for terminal display
// ABOUTME: Detects inline HTML in summaries and converts it to Markdown

package render

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches the tags collection records use for emphasis and links.
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|em|i|strong|b|sup|sub|ul|ol|li)[\s/>]`)

// IsHTML reports whether text appears to contain HTML markup.
func IsHTML(text string) bool {
	return htmlTagPattern.MatchString(text)
}

// TextToMarkdown converts HTML fragments in text to Markdown. Plain text,
// and text that fails to convert, is returned trimmed but otherwise unchanged.
func TextToMarkdown(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || !IsHTML(text) {
		return text
	}

	markdown, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(markdown)
}
