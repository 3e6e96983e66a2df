package domain

import "strings"

// FirstNonEmpty returns the first source that is not blank, in the order given.
// Sources are listed highest precedence first; the last one is usually a
// placeholder. Returns "" when every source is blank.
func FirstNonEmpty(sources ...string) string {
	for _, s := range sources {
		if !isBlank(s) {
			return s
		}
	}
	return ""
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
