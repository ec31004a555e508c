package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"searchline/internal/domain"
	"searchline/internal/ui/logic"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width       int
	Engine      *domain.Engine
	Line        string
	Suggestions []string
	Cursor      logic.Cursor
	Status      string
	StatusIsErr bool
	HelpModel   help.Model
	KeyMap      help.KeyMap
	ShowHints   bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	prompt *PromptRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles: styles,
		prompt: NewPromptRenderer(styles),
	}
}

// Render produces one frame: the prompt line, the suggestion rows and an
// optional status or key hint line.
func (r *Renderer) Render(vs ViewState) string {
	b := &strings.Builder{}

	b.WriteString(r.prompt.Line(vs.Engine, vs.Line, vs.Width))

	for i, s := range vs.Suggestions {
		b.WriteString("\n")
		text := s
		if vs.Width > 0 {
			text = TruncateFromEnd(s, vs.Width)
		}
		if vs.Cursor.Is(i) {
			b.WriteString(r.styles.Selected.Render(text))
		} else {
			b.WriteString(r.styles.Suggestion.Render(text))
		}
	}

	switch {
	case vs.Status != "":
		b.WriteString("\n")
		status := vs.Status
		if vs.Width > 0 {
			status = TruncateEnd(status, vs.Width)
		}
		if vs.StatusIsErr {
			b.WriteString(r.styles.StatusError.Render(status))
		} else {
			b.WriteString(r.styles.Dim.Render(status))
		}
	case vs.ShowHints && vs.KeyMap != nil:
		b.WriteString("\n")
		hm := vs.HelpModel
		hm.Width = vs.Width
		b.WriteString(hm.View(vs.KeyMap))
	}

	return b.String()
}

// RenderOpening is the final frame left on the terminal after submit
func (r *Renderer) RenderOpening(url string) string {
	return r.styles.Opening.Render("Opening ") + url
}
