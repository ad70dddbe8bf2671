package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeOwnerLabel cleans the free-form display label attached to a
// reservation (guest name, event title). Control characters are dropped,
// whitespace runs collapse to a single space.
func NormalizeOwnerLabel(label string) string {
	var kept strings.Builder
	for _, r := range label {
		if unicode.IsControl(r) {
			continue
		}
		kept.WriteRune(r)
	}
	return TrimAndNormalize(kept.String())
}

// NormalizeOwnerID lowercases and trims an owner identifier so the same
// owner always rates and rate-limits the same way.
func NormalizeOwnerID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
