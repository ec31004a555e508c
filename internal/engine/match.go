package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"searchline/internal/domain"
)

// EscapeMarker forces the default engine when it starts the line
const EscapeMarker = "?"

// Match resolves the engine, prefix and search term for an input line.
// A prefix is only recognised once its token is complete, i.e. followed by
// whitespace, and must equal a registered id exactly.
func Match(line string, reg *Registry) domain.MatchResult {
	def := reg.Default()

	if strings.HasPrefix(line, EscapeMarker) {
		return domain.MatchResult{Engine: def, SearchTerm: line[len(EscapeMarker):]}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 || (len(fields) == 1 && !endsInSpace(line)) {
		return domain.MatchResult{Engine: def, SearchTerm: strings.TrimSpace(line)}
	}

	candidate := fields[0]
	if candidate != "" {
		if eng, ok := reg.Get(candidate); ok {
			rest := strings.TrimLeftFunc(line, unicode.IsSpace)[len(candidate):]
			return domain.MatchResult{
				Engine:        eng,
				MatchedPrefix: candidate,
				SearchTerm:    strings.TrimSpace(rest),
			}
		}
	}

	return domain.MatchResult{Engine: def, SearchTerm: strings.TrimSpace(line)}
}

func endsInSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}
