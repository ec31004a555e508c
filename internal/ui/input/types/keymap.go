package types

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"searchline/internal/config"
)

// KeyMap maps terminal keys to prompt actions
type KeyMap struct {
	Submit     key.Binding
	SelectNext key.Binding
	SelectPrev key.Binding
	DeleteChar key.Binding
	DeleteWord key.Binding
	ClearInput key.Binding
	Exit       key.Binding
	ShowHelp   key.Binding
}

var actionHelp = map[string]string{
	config.ActionSubmit:     "open search",
	config.ActionSelectNext: "next suggestion",
	config.ActionSelectPrev: "previous suggestion",
	config.ActionDeleteChar: "delete char",
	config.ActionDeleteWord: "delete word",
	config.ActionClearInput: "clear line",
	config.ActionExit:       "quit",
	config.ActionShowHelp:   "help",
}

// NewKeyMap builds the key map from resolved keybinds. Actions without any key
// are disabled.
func NewKeyMap(binds []config.KeyBinding) KeyMap {
	keys := make(map[string][]string)
	specs := make(map[string][]string)
	for _, b := range binds {
		keys[b.Action] = append(keys[b.Action], b.Key)
		specs[b.Action] = append(specs[b.Action], b.Spec)
	}

	build := func(action string) key.Binding {
		b := key.NewBinding(
			key.WithKeys(keys[action]...),
			key.WithHelp(strings.Join(specs[action], "/"), actionHelp[action]),
		)
		if len(keys[action]) == 0 {
			b.SetEnabled(false)
		}
		return b
	}

	return KeyMap{
		Submit:     build(config.ActionSubmit),
		SelectNext: build(config.ActionSelectNext),
		SelectPrev: build(config.ActionSelectPrev),
		DeleteChar: build(config.ActionDeleteChar),
		DeleteWord: build(config.ActionDeleteWord),
		ClearInput: build(config.ActionClearInput),
		Exit:       build(config.ActionExit),
		ShowHelp:   build(config.ActionShowHelp),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.SelectNext, k.Exit, k.ShowHelp}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Exit, k.ShowHelp},
		{k.SelectNext, k.SelectPrev},
		{k.DeleteChar, k.DeleteWord, k.ClearInput},
	}
}
