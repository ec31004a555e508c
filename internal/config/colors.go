package config

import (
	"fmt"
	"strconv"
	"strings"
)

var colorNames = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"grey":          "8",
	"gray":          "8",
	"darkgrey":      "8",
	"darkgray":      "8",
	"brightred":     "9",
	"lightred":      "9",
	"brightgreen":   "10",
	"lightgreen":    "10",
	"brightyellow":  "11",
	"lightyellow":   "11",
	"brightblue":    "12",
	"lightblue":     "12",
	"brightmagenta": "13",
	"lightmagenta":  "13",
	"brightcyan":    "14",
	"lightcyan":     "14",
	"brightwhite":   "15",
}

// NormalizeColor turns a colour name, ANSI index, #rrggbb / #rgb hex value or
// rgb(r,g,b) triple into a terminal colour string. Empty means terminal default.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "reset") || strings.EqualFold(s, "default") {
		return "", nil
	}

	lower := strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(s))
	if idx, ok := colorNames[lower]; ok {
		return idx, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return "", fmt.Errorf("colour index %d out of range 0-255", n)
		}
		return strconv.Itoa(n), nil
	}

	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return "", fmt.Errorf("invalid hex colour %q", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", fmt.Errorf("invalid hex colour %q", s)
		}
		return strings.ToLower(s), nil
	}

	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		parts := strings.Split(lower[4:len(lower)-1], ",")
		if len(parts) != 3 {
			return "", fmt.Errorf("invalid rgb colour %q", s)
		}
		var rgb [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil || v < 0 || v > 255 {
				return "", fmt.Errorf("invalid rgb colour %q", s)
			}
			rgb[i] = v
		}
		return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), nil
	}

	return "", fmt.Errorf("unknown colour %q", s)
}
