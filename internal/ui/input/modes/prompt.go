package modes

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"searchline/internal/ui/input/types"
)

// PromptMode is the line editor: bound keys become actions, unbound printable
// characters are typed into the line.
type PromptMode struct {
	keys types.KeyMap
}

func NewPromptMode(keys types.KeyMap) *PromptMode {
	return &PromptMode{keys: keys}
}

func (m *PromptMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	// Pasted text is typed as is, even when it contains bound characters
	if !msg.Paste {
		switch {
		case key.Matches(msg, m.keys.Exit):
			return []types.Action{types.ExitAction{}}, true
		case key.Matches(msg, m.keys.Submit):
			return []types.Action{types.SubmitAction{}}, true
		case key.Matches(msg, m.keys.SelectNext):
			return []types.Action{types.SelectNextAction{}}, true
		case key.Matches(msg, m.keys.SelectPrev):
			return []types.Action{types.SelectPrevAction{}}, true
		case key.Matches(msg, m.keys.DeleteChar):
			return []types.Action{types.DeleteCharAction{}}, true
		case key.Matches(msg, m.keys.DeleteWord):
			return []types.Action{types.DeleteWordAction{}}, true
		case key.Matches(msg, m.keys.ClearInput):
			return []types.Action{types.ClearInputAction{}}, true
		case key.Matches(msg, m.keys.ShowHelp):
			return []types.Action{types.ShowHelpAction{}}, true
		}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []types.Action{types.InsertCharAction{Char: ' '}}, true
	case tea.KeyRunes:
		if msg.Alt {
			return nil, false
		}
		var actions []types.Action
		for _, r := range msg.Runes {
			if r == '\n' || r == '\t' {
				r = ' '
			}
			if unicode.IsPrint(r) {
				actions = append(actions, types.InsertCharAction{Char: r})
			}
		}
		return actions, len(actions) > 0
	}
	return nil, false
}
