package orchestrator

import (
	"fmt"
	"net/url"

	"searchline/internal/domain"
	"searchline/internal/engine"
	"searchline/internal/ui/logic"
	"searchline/internal/ui/state"
)

// DefaultMaxSuggestions caps how many candidates can be shown and selected
const DefaultMaxSuggestions = 15

// FetchRequest asks the loop to fetch suggestions for Term from Engine
type FetchRequest struct {
	Engine *domain.Engine
	Term   string
}

// Orchestrator is the prompt's state machine. It never blocks and never does
// I/O: edits return a FetchRequest for the loop to run off the main path, and
// results come back through Receive or Fail.
type Orchestrator struct {
	reg   *engine.Registry
	state *state.AppState
	max   int
}

// New creates an orchestrator over reg with an empty line
func New(reg *engine.Registry, maxSuggestions int) *Orchestrator {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	st := state.NewAppState()
	st.Match = engine.Match("", reg)
	return &Orchestrator{reg: reg, state: st, max: maxSuggestions}
}

// State exposes the state for rendering. Callers must not modify it.
func (o *Orchestrator) State() *state.AppState { return o.state }


func (o *Orchestrator) Line() string { return o.state.Line }

func (o *Orchestrator) Match() domain.MatchResult { return o.state.Match }

func (o *Orchestrator) Phase() state.Phase { return o.state.Phase }

func (o *Orchestrator) ExpectedTerm() string { return o.state.ExpectedTerm }

func (o *Orchestrator) Cursor() logic.Cursor { return o.state.Cursor }

// Candidates returns the selectable part of the displayed set
func (o *Orchestrator) Candidates() []string { return o.state.Candidates(o.max) }

// IsExpected reports whether term is still the one the prompt waits on
func (o *Orchestrator) IsExpected(term string) bool {
	return o.state.Phase == state.PhaseFetchPending && o.state.ExpectedTerm == term
}

// InsertChar appends r. A space is swallowed while the active engine joins
// words with nothing, since its terms are single identifiers.
func (o *Orchestrator) InsertChar(r rune) *FetchRequest {
	if r == ' ' && o.state.Match.Engine.SpaceBecomes == "" {
		o.state.Cursor = logic.NoSelection
		return nil
	}
	return o.edit(logic.InsertChar(o.state.Line, r))
}

func (o *Orchestrator) DeleteChar() *FetchRequest {
	return o.edit(logic.DeleteChar(o.state.Line))
}

func (o *Orchestrator) DeleteWord() *FetchRequest {
	return o.edit(logic.DeleteWord(o.state.Line))
}

func (o *Orchestrator) ClearInput() *FetchRequest {
	return o.edit("")
}

// SetLine replaces the whole line, as typed text
func (o *Orchestrator) SetLine(line string) *FetchRequest {
	return o.edit(line)
}

func (o *Orchestrator) edit(line string) *FetchRequest {
	prev := o.state.Match

	o.state.Line = line
	o.state.Match = engine.Match(line, o.reg)
	o.state.Anchor = o.state.Match.MatchedPrefix
	o.state.Cursor = logic.NoSelection
	o.state.LastError = nil

	// Engines are compared by their suggestion source: switching between two
	// engines backed by the same endpoint keeps the list.
	engineChanged := prev.Engine.SuggestionURL != o.state.Match.Engine.SuggestionURL ||
		prev.Engine.Adapter != o.state.Match.Engine.Adapter
	if engineChanged {
		o.state.ClearSuggestions()
	} else if o.state.Match.SearchTerm == o.state.ExpectedTerm {
		return nil
	}
	return o.refresh()
}

func (o *Orchestrator) refresh() *FetchRequest {
	m := o.state.Match
	o.state.ExpectedTerm = m.SearchTerm

	if m.SearchTerm == "" || !m.Engine.HasSuggestions() {
		o.state.ClearSuggestions()
		o.state.Phase = state.PhaseIdle
		return nil
	}

	o.state.Phase = state.PhaseFetchPending
	return &FetchRequest{Engine: m.Engine, Term: m.SearchTerm}
}

// Receive offers a fetch result. It becomes the displayed set only when it is
// for the expected term; anything else is stale and dropped.
func (o *Orchestrator) Receive(set domain.SuggestionSet) bool {
	if o.state.Phase == state.PhaseIdle || !logic.ShouldAccept(set, o.state.ExpectedTerm) {
		return false
	}
	set.Candidates = append([]string(nil), set.Candidates...)
	o.state.SetSuggestions(set)
	o.state.Phase = state.PhaseDisplaying
	o.state.LastError = nil
	return true
}

// Fail records a failed fetch. A failed fetch is one that never resolves: the
// phase and the displayed set are left as they are, so another fetch for the
// same term can still be accepted. Reports whether the failure was current.
func (o *Orchestrator) Fail(term string, err error) bool {
	if o.state.Phase != state.PhaseFetchPending || term != o.state.ExpectedTerm {
		return false
	}
	o.state.LastError = err
	return true
}

// SelectNext highlights the next suggestion and previews it in the line
func (o *Orchestrator) SelectNext() bool {
	return o.navigate(logic.Next)
}

// SelectPrev highlights the previous suggestion and previews it in the line
func (o *Orchestrator) SelectPrev() bool {
	return o.navigate(logic.Prev)
}

func (o *Orchestrator) navigate(step func(logic.Cursor, int) logic.Cursor) bool {
	if o.state.Phase != state.PhaseDisplaying {
		return false
	}
	candidates := o.Candidates()
	if len(candidates) == 0 {
		return false
	}

	o.state.Cursor = step(o.state.Cursor, len(candidates))
	selected, ok := o.state.Selected(o.max)
	if !ok {
		return false
	}

	// A preview is not typing: no fetch, and the anchor prefix stays
	line := engine.Reconstruct(selected, o.state.Anchor, o.reg)
	o.state.Line = line
	o.state.Match = engine.Match(line, o.reg)
	return true
}

// Submit resolves the search URL for the current line
func (o *Orchestrator) Submit() (string, error) {
	m := o.state.Match
	resolved := m.Engine.FormatSearchURL(m.SearchTerm)
	if _, err := url.Parse(resolved); err != nil {
		return "", fmt.Errorf("engine %q produced an invalid URL: %w", m.Engine.Name, err)
	}
	return resolved, nil
}
