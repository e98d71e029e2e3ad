package textutil

import "strings"

// StripBrackets removes a trailing parenthesized or bracketed qualifier from
// a title, for building catalog search queries. "Greatest Hits (Deluxe
// Edition)" becomes "Greatest Hits". Returns the input unchanged when the
// result would be empty.
func StripBrackets(title string) string {
	trimmed := strings.TrimSpace(title)
	idx := strings.IndexAny(trimmed, "([")
	if idx <= 0 {
		return trimmed
	}
	stripped := strings.TrimSpace(trimmed[:idx])
	if stripped == "" {
		return trimmed
	}
	return stripped
}
