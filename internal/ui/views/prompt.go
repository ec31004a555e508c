package views

import (
	"github.com/charmbracelet/lipgloss"

	"searchline/internal/domain"
)

// PromptRenderer draws the engine prompt in front of the input line
type PromptRenderer struct {
	styles *Styles
}

// NewPromptRenderer creates a new prompt renderer
func NewPromptRenderer(styles *Styles) *PromptRenderer {
	return &PromptRenderer{styles: styles}
}

// Full renders icon and text
func (r *PromptRenderer) Full(e *domain.Engine) string {
	icon, text := PromptStyles(e.Prompt)
	return icon.Render(e.Prompt.Icon) + text.Render(e.Prompt.Text)
}

// Short renders only the icon, for narrow terminals
func (r *PromptRenderer) Short(e *domain.Engine) string {
	icon, _ := PromptStyles(e.Prompt)
	return icon.Render(e.Prompt.Icon)
}

// Line renders the prompt and the input line within width cells. When the
// whole thing does not fit, the prompt collapses to its icon and the line is
// cut from the front.
func (r *PromptRenderer) Line(e *domain.Engine, line string, width int) string {
	const cursor = "_"

	full := r.Full(e)
	if width <= 0 || lipgloss.Width(full)+1+lipgloss.Width(line)+len(cursor) < width {
		return full + " " + r.styles.Input.Render(line) + r.styles.Cursor.Render(cursor)
	}

	short := r.Short(e)
	room := width - lipgloss.Width(short) - 1 - len(cursor)
	return short + " " + r.styles.Input.Render(TruncateFromEnd(line, room)) + r.styles.Cursor.Render(cursor)
}
