package domain

import (
	"net/url"
	"strings"
)

// Placeholder is replaced by the search term in URL templates
const Placeholder = "%s"

// AdapterKind selects how a suggestion response body is parsed
type AdapterKind string

const (
	AdapterOpenSearch AdapterKind = "opensearch"
	AdapterJSONPath   AdapterKind = "jsonpath"
)

// AdapterSpec describes the response shape of an engine's suggestion endpoint
type AdapterSpec struct {
	Kind AdapterKind
	Path string // dotted field path, only used by AdapterJSONPath
}

// Prompt holds the styling of the prompt shown while an engine is active.
// Colours are lipgloss colour strings (ANSI index or hex).
type Prompt struct {
	Icon   string
	IconFg string
	IconBg string
	Text   string
	TextFg string
	TextBg string
}

// Engine is a named pair of URL templates plus display styling.
// It is immutable once the registry has been built.
type Engine struct {
	ID            string // prefix key, "" for the default engine
	Name          string
	SuggestionURL string // may be empty: no live suggestions
	SearchURL     string
	SpaceBecomes  string
	Adapter       AdapterSpec
	Prompt        Prompt
}

// IsDefault reports whether this is the engine used without a prefix
func (e *Engine) IsDefault() bool {
	return e.ID == ""
}

// HasSuggestions reports whether the engine has a suggestion endpoint
func (e *Engine) HasSuggestions() bool {
	return e.SuggestionURL != ""
}

// FormatSuggestionURL substitutes the query-escaped term into the suggestion template.
// Spaces are always sent as '+'.
func (e *Engine) FormatSuggestionURL(term string) string {
	return strings.ReplaceAll(e.SuggestionURL, Placeholder, url.QueryEscape(term))
}

// FormatSearchURL substitutes the term into the search template, escaping each word
// and joining words with SpaceBecomes.
func (e *Engine) FormatSearchURL(term string) string {
	words := strings.Split(term, " ")
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return strings.ReplaceAll(e.SearchURL, Placeholder, strings.Join(words, e.SpaceBecomes))
}

// MatchResult is the engine, prefix and term resolved from one input line.
// It is recomputed on every edit and never stored.
type MatchResult struct {
	Engine        *Engine
	MatchedPrefix string
	SearchTerm    string
}

// SuggestionSet is the outcome of one suggestion fetch
type SuggestionSet struct {
	Term       string
	Candidates []string
}

// Len returns the number of candidates
func (s *SuggestionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Candidates)
}
