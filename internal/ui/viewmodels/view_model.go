package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"searchline/internal/ui/input/types"
	"searchline/internal/ui/orchestrator"
	"searchline/internal/ui/views"
)

// ViewModel prepares data for rendering
type ViewModel struct {
	orch        *orchestrator.Orchestrator
	help        help.Model
	keys        types.KeyMap
	statusIsErr bool
}

// NewViewModel creates a new view model
func NewViewModel(orch *orchestrator.Orchestrator, keys types.KeyMap) *ViewModel {
	return &ViewModel{
		orch: orch,
		help: help.New(),
		keys: keys,
	}
}

// SetDimensions updates the terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	st := vm.orch.State()
	st.Width = width
	st.Height = height
	vm.help.Width = width
}

// SetStatus shows a message under the prompt
func (vm *ViewModel) SetStatus(msg string, isErr bool) {
	vm.orch.State().StatusMessage = msg
	vm.statusIsErr = isErr
}

// ClearStatus removes the status message
func (vm *ViewModel) ClearStatus() {
	vm.SetStatus("", false)
}

// BuildViewState creates the view state for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	st := vm.orch.State()
	return views.ViewState{
		Width:       st.Width,
		Engine:      st.Match.Engine,
		Line:        st.Line,
		Suggestions: vm.orch.Candidates(),
		Cursor:      st.Cursor,
		Status:      st.StatusMessage,
		StatusIsErr: vm.statusIsErr,
		HelpModel:   vm.help,
		KeyMap:      vm.keys,
		ShowHints:   st.Line == "",
	}
}
