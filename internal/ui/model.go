package ui

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"searchline/internal/browser"
	"searchline/internal/config"
	"searchline/internal/domain"
	"searchline/internal/engine"
	"searchline/internal/eventbus"
	"searchline/internal/ui/commands"
	"searchline/internal/ui/handlers"
	"searchline/internal/ui/input"
	inputtypes "searchline/internal/ui/input/types"
	"searchline/internal/ui/orchestrator"
	"searchline/internal/ui/viewmodels"
	"searchline/internal/ui/views"
)

// EnvE2E makes the prompt announce readiness for the end-to-end tests
const EnvE2E = "SEARCHLINE_E2E_TEST"

// SuggestionSource fetches the suggestion set for a term
type SuggestionSource = commands.SuggestionSource

// Options configures a Model
type Options struct {
	Registry *engine.Registry
	Source   SuggestionSource
	// Opener is called with the resolved URL on submit. When nil the URL is
	// only recorded in the Result.
	Opener      browser.Opener
	Bus         eventbus.EventBus
	Logger      *zap.Logger
	Keybinds    []config.KeyBinding
	Fetch       config.FetchConfig
	InitialLine string
	Notice      string // shown under the prompt until the first key
}

// Result is what the prompt ended with
type Result struct {
	URL       string
	Submitted bool
	Err       error
}

// Model represents the UI state
type Model struct {
	orch     *orchestrator.Orchestrator
	bus      eventbus.EventBus
	logger   *zap.Logger
	debounce time.Duration

	executor     *commands.Executor
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	pending     *orchestrator.FetchRequest // fetch due at Init
	inPagerMode bool // tracks if we're currently in pager mode
	opening     bool
	done        bool
	result      Result
	e2e         bool
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")
	keys := inputtypes.NewKeyMap(opts.Keybinds)
	orch := orchestrator.New(opts.Registry, opts.Fetch.MaxSuggestions)

	m := &Model{
		orch:     orch,
		bus:      opts.Bus,
		logger:   logger,
		debounce: opts.Fetch.Debounce(),
		executor: commands.NewExecutor(commands.CommandContext{
			Source:  opts.Source,
			Opener:  opts.Opener,
			Bus:     opts.Bus,
			Timeout: opts.Fetch.Timeout(),
		}),
		eventHandler: handlers.NewEventHandler(orch, opts.Bus, logger),
		viewModel:    viewmodels.NewViewModel(orch, keys),
		inputHandler: input.New(keys),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(opts.Keybinds, opts.Registry),
		helpOps:      NewHelpOps(),
		e2e:          os.Getenv(EnvE2E) == "1",
	}

	if opts.InitialLine != "" {
		m.pending = m.orch.SetLine(opts.InitialLine)
	}
	if opts.Notice != "" {
		m.viewModel.SetStatus(opts.Notice, true)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.SetProgram(p)
}

// Result returns how the prompt ended. Only meaningful once the program has quit.
func (m *Model) Result() Result {
	return m.result
}

// Orchestrator exposes the prompt state machine, for tests and rendering
func (m *Model) Orchestrator() *orchestrator.Orchestrator {
	return m.orch
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.e2e {
		cmds = append(cmds, tea.Println("__READY__"))
	}
	if m.pending != nil {
		cmds = append(cmds, m.fetchCmd(m.pending))
		m.pending = nil
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode || m.opening || m.done {
			return m, nil
		}

		actions := m.inputHandler.HandleKey(msg)

		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.done {
		if m.result.Submitted && m.result.Err == nil && m.executor.CanOpen() {
			return m.renderer.RenderOpening(m.result.URL)
		}
		return ""
	}
	if m.inPagerMode {
		return ""
	}

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug("processAction", zap.String("action", action.Type()))

	if _, ok := action.(inputtypes.ShowHelpAction); !ok {
		m.viewModel.ClearStatus()
	}

	switch a := action.(type) {
	case inputtypes.InsertCharAction:
		return m.fetchCmd(m.orch.InsertChar(a.Char))

	case inputtypes.DeleteCharAction:
		return m.fetchCmd(m.orch.DeleteChar())

	case inputtypes.DeleteWordAction:
		return m.fetchCmd(m.orch.DeleteWord())

	case inputtypes.ClearInputAction:
		return m.fetchCmd(m.orch.ClearInput())

	case inputtypes.SelectNextAction:
		m.orch.SelectNext()

	case inputtypes.SelectPrevAction:
		m.orch.SelectPrev()

	case inputtypes.SubmitAction:
		return m.submit()

	case inputtypes.ShowHelpAction:
		return m.showHelp()

	case inputtypes.ExitAction:
		m.done = true
		return tea.Quit
	}

	return nil
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.SuggestionsMsg:
		m.eventHandler.HandleSuggestions(msg)
		return m, nil

	case commands.SuggestionsFailedMsg:
		m.eventHandler.HandleFailure(msg)
		return m, nil

	case debounceElapsedMsg:
		// Only the latest request survives the delay
		if m.orch.IsExpected(msg.req.Term) && m.orch.Match().Engine == msg.req.Engine {
			return m, m.executor.ExecuteFetch(msg.req)
		}
		return m, nil

	case commands.OpenedMsg:
		m.opening = false
		m.done = true
		m.result.Err = msg.Err
		m.eventHandler.HandleOpened(msg)
		return m, tea.Quit

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.logger.Warn("help pager failed", zap.Error(msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	default:
		// Other messages are handled elsewhere
		return m, nil
	}
}

// fetchCmd turns a fetch request into a command, delayed by the debounce if set
func (m *Model) fetchCmd(req *orchestrator.FetchRequest) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	if m.debounce > 0 {
		return tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceElapsedMsg{req: r}
		})
	}
	return m.executor.ExecuteFetch(r)
}

func (m *Model) submit() tea.Cmd {
	resolved, err := m.orch.Submit()
	if err != nil {
		m.viewModel.SetStatus(err.Error(), true)
		return nil
	}

	match := m.orch.Match()
	m.result = Result{URL: resolved, Submitted: true}
	m.logger.Info("query submitted", zap.String("engine", match.Engine.ID), zap.String("url", resolved))
	m.publish(domain.QuerySubmittedEvent{EngineID: match.Engine.ID, Term: match.SearchTerm, URL: resolved})

	if !m.executor.CanOpen() {
		m.done = true
		return tea.Quit
	}

	m.opening = true
	return m.executor.ExecuteOpen(resolved)
}

func (m *Model) showHelp() tea.Cmd {
	content := m.helpRenderer.Render()
	program := m.helpOps.program
	if program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}

func (m *Model) publish(event domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}
