package views

import (
	"github.com/charmbracelet/lipgloss"

	"searchline/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Input       lipgloss.Style
	Cursor      lipgloss.Style
	Suggestion  lipgloss.Style
	Selected    lipgloss.Style
	Dim         lipgloss.Style
	StatusError lipgloss.Style
	Opening     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Input:      lipgloss.NewStyle(),
		Cursor:     lipgloss.NewStyle().Blink(true),
		Suggestion: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("7")),
		Dim:         lipgloss.NewStyle().Faint(true),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Opening:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// PromptStyles returns the icon and text styles of an engine's prompt
func PromptStyles(p domain.Prompt) (icon, text lipgloss.Style) {
	return colored(p.IconFg, p.IconBg), colored(p.TextFg, p.TextBg)
}

func colored(fg, bg string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	return s
}
