package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"searchline/internal/config"
	"searchline/internal/domain"
	"searchline/internal/engine"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keybinds []config.KeyBinding
	registry *engine.Registry
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keybinds []config.KeyBinding, reg *engine.Registry) *HelpRenderer {
	return &HelpRenderer{keybinds: keybinds, registry: reg}
}

// Render generates the help page: the active keybinds and the engine prefixes
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	dimStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("searchline help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Keys"))
	help.WriteString("\n")
	keyWidth := 0
	for _, b := range r.keybinds {
		keyWidth = max(keyWidth, lipgloss.Width(b.Spec))
	}
	for _, b := range r.keybinds {
		pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Spec))
		help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(b.Spec), pad, descStyle.Render(b.Action)))
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Engines"))
	help.WriteString("\n")
	if r.registry != nil {
		prefixWidth := len("(default)")
		for _, id := range r.registry.IDs() {
			prefixWidth = max(prefixWidth, lipgloss.Width(id))
		}
		for _, id := range r.registry.IDs() {
			e, _ := r.registry.Get(id)
			label := id
			if id == "" {
				label = "(default)"
			}
			pad := strings.Repeat(" ", prefixWidth-lipgloss.Width(label))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(label), pad, descStyle.Render(engineSummary(e))))
		}
	}
	help.WriteString("\n")

	help.WriteString(dimStyle.Render(fmt.Sprintf("  Type a prefix and a space to pick an engine. Start with %q to search for a prefix with the default engine.", engine.EscapeMarker)))
	help.WriteString("\n")

	return help.String()
}

func engineSummary(e *domain.Engine) string {
	if e == nil {
		return ""
	}
	if !e.HasSuggestions() {
		return e.Name + " (no suggestions)"
	}
	return e.Name
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Do not write on exit, the prompt redraws itself
	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}
