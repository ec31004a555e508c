package state

import (
	"searchline/internal/domain"
	"searchline/internal/ui/logic"
)

// Phase is the orchestrator's position in the fetch cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetchPending
	PhaseDisplaying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetchPending:
		return "fetch-pending"
	case PhaseDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// AppState contains all the prompt state. It has a single writer: the event loop.
type AppState struct {
	// Input
	Line   string             // what the user sees and what is matched
	Match  domain.MatchResult // recomputed on every change of Line
	Anchor string             // prefix the user typed, kept while previewing suggestions

	// Fetch correlation
	Phase        Phase
	ExpectedTerm string // the only term whose suggestions may be displayed

	// Suggestions
	Suggestions *domain.SuggestionSet // displayed set, nil when none
	Cursor      logic.Cursor

	// Diagnostics
	LastError     error
	StatusMessage string

	// Terminal
	Width  int
	Height int
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Phase:  PhaseIdle,
		Cursor: logic.NoSelection,
		Width:  80,
		Height: 24,
	}
}

// SetSuggestions replaces the displayed set and clears the selection
func (s *AppState) SetSuggestions(set domain.SuggestionSet) {
	s.Suggestions = &set
	s.Cursor = logic.NoSelection
}

// ClearSuggestions removes the displayed set and the selection
func (s *AppState) ClearSuggestions() {
	s.Suggestions = nil
	s.Cursor = logic.NoSelection
}

// Candidates returns at most limit displayed candidates
func (s *AppState) Candidates(limit int) []string {
	if s.Suggestions == nil {
		return nil
	}
	c := s.Suggestions.Candidates
	if limit > 0 && len(c) > limit {
		c = c[:limit]
	}
	return c
}

// Selected returns the highlighted candidate, if any
func (s *AppState) Selected(limit int) (string, bool) {
	idx, ok := s.Cursor.Index()
	if !ok {
		return "", false
	}
	c := s.Candidates(limit)
	if idx < 0 || idx >= len(c) {
		return "", false
	}
	return c[idx], true
}
