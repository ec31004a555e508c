package commands

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"searchline/internal/browser"
	"searchline/internal/domain"
	"searchline/internal/eventbus"
	"searchline/internal/ui/orchestrator"
)

// SuggestionSource fetches the suggestion set for a term
type SuggestionSource interface {
	Fetch(ctx context.Context, eng *domain.Engine, term string) (domain.SuggestionSet, error)
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Source  SuggestionSource
	Opener  browser.Opener
	Bus     eventbus.EventBus
	Timeout time.Duration // per fetch or open, 0 means unbounded
}

func (c *CommandContext) publish(event domain.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(event)
	}
}

func (c *CommandContext) context() (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(context.Background(), c.Timeout)
	}
	return context.WithCancel(context.Background())
}

// SuggestionsMsg carries a finished fetch back to the loop
type SuggestionsMsg struct {
	Set domain.SuggestionSet
}

// SuggestionsFailedMsg reports a fetch that produced no set
type SuggestionsFailedMsg struct {
	EngineID string
	Term     string
	Err      error
}

// OpenedMsg is the result of handing the URL to the opener
type OpenedMsg struct {
	URL string
	Err error // a *browser.LaunchError when set
}

// FetchCommand runs one suggestion fetch off the loop
type FetchCommand struct {
	ctx *CommandContext
	req orchestrator.FetchRequest
}

// NewFetchCommand creates a new fetch command
func NewFetchCommand(ctx *CommandContext, req orchestrator.FetchRequest) *FetchCommand {
	return &FetchCommand{ctx: ctx, req: req}
}

// Execute returns a command that yields exactly one SuggestionsMsg or
// SuggestionsFailedMsg. Nothing cancels it: a result that arrives after the
// user moved on is dropped by the staleness check.
func (c *FetchCommand) Execute() tea.Cmd {
	if c.ctx.Source == nil {
		return nil
	}
	c.ctx.publish(domain.SuggestionsRequestedEvent{EngineID: c.req.Engine.ID, Term: c.req.Term})

	cc, req := c.ctx, c.req
	return func() tea.Msg {
		ctx, cancel := cc.context()
		defer cancel()

		set, err := cc.Source.Fetch(ctx, req.Engine, req.Term)
		if err != nil {
			return SuggestionsFailedMsg{EngineID: req.Engine.ID, Term: req.Term, Err: err}
		}
		return SuggestionsMsg{Set: set}
	}
}

// OpenCommand hands a resolved URL to the opener
type OpenCommand struct {
	ctx *CommandContext
	url string
}

// NewOpenCommand creates a new open command
func NewOpenCommand(ctx *CommandContext, url string) *OpenCommand {
	return &OpenCommand{ctx: ctx, url: url}
}

// Execute returns a command that yields an OpenedMsg
func (c *OpenCommand) Execute() tea.Cmd {
	if c.ctx.Opener == nil {
		return nil
	}
	cc, url := c.ctx, c.url
	return func() tea.Msg {
		ctx, cancel := cc.context()
		defer cancel()

		err := cc.Opener.Open(ctx, url)
		var launchErr *browser.LaunchError
		if err != nil && !errors.As(err, &launchErr) {
			err = &browser.LaunchError{URL: url, Command: "opener", Err: err}
		}
		return OpenedMsg{URL: url, Err: err}
	}
}
