package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"searchline/internal/ui/orchestrator"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx CommandContext) *Executor {
	return &Executor{ctx: &ctx}
}

// ExecuteFetch creates and executes a fetch command
func (e *Executor) ExecuteFetch(req orchestrator.FetchRequest) tea.Cmd {
	return NewFetchCommand(e.ctx, req).Execute()
}

// ExecuteOpen creates and executes an open command
func (e *Executor) ExecuteOpen(url string) tea.Cmd {
	return NewOpenCommand(e.ctx, url).Execute()
}

// CanOpen reports whether submitting hands the URL to an opener
func (e *Executor) CanOpen() bool {
	return e.ctx.Opener != nil
}
