package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"searchline/internal/ui/input/modes"
	"searchline/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
}

func New(keys types.KeyMap) *Handler {
	h := &Handler{
		currentMode: types.ModePrompt,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModePrompt] = modes.NewPromptMode(keys)

	return h
}

// HandleKey maps a key to actions. Keys nobody handles yield no actions.
func (h *Handler) HandleKey(msg tea.KeyMsg) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg)
	if !consumed {
		return nil
	}
	return actions
}
