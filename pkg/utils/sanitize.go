package utils

import (
	"regexp"
	"strings"
)

const MaxDisplayNameLength = 50

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes all HTML tags from a string
func StripHTML(input string) string {
	return tagPattern.ReplaceAllString(input, "")
}

// CleanDisplayName strips markup, trims and bounds a free-form participant name
func CleanDisplayName(name string) string {
	name = strings.TrimSpace(StripHTML(name))
	return TruncateString(name, MaxDisplayNameLength)
}

// TruncateString safely truncates a string to max runes
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}
