package engine

import "strings"

// Reconstruct builds the input line for an accepted suggestion so that
// re-matching it keeps the term intact. A suggestion that starts with some other
// engine's prefix, or with the escape marker itself, is escaped; otherwise the
// current prefix is kept in front.
func Reconstruct(selected, currentPrefix string, reg *Registry) string {
	if currentPrefix == "" && strings.HasPrefix(selected, EscapeMarker) {
		return EscapeMarker + selected
	}

	interfering := Match(selected, reg).MatchedPrefix

	if interfering != "" && interfering != currentPrefix {
		return EscapeMarker + selected
	}
	if currentPrefix != "" {
		return currentPrefix + " " + selected
	}
	return selected
}
