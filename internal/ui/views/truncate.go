package views

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// TruncateFromEnd keeps the end of s, which is where the user is typing, and
// marks the cut with dots so the result is at most width cells wide.
func TruncateFromEnd(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return strings.Repeat(".", width)
	}

	room := width - len(ellipsis)
	runes := []rune(s)
	used, i := 0, len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > room {
			break
		}
		used += w
		i--
	}
	return ellipsis + string(runes[i:])
}

// TruncateEnd cuts the tail of s to fit width cells
func TruncateEnd(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}
