package handlers

import (
	"go.uber.org/zap"

	"searchline/internal/domain"
	"searchline/internal/eventbus"
	"searchline/internal/ui/commands"
	"searchline/internal/ui/orchestrator"
)

// EventHandler applies finished fetches to the prompt state
type EventHandler struct {
	orch   *orchestrator.Orchestrator
	bus    eventbus.EventBus
	logger *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(orch *orchestrator.Orchestrator, bus eventbus.EventBus, logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{orch: orch, bus: bus, logger: logger}
}

// HandleSuggestions hands the set to the orchestrator and reports whether it
// was accepted. Sets for a term that is no longer expected are dropped.
func (h *EventHandler) HandleSuggestions(msg commands.SuggestionsMsg) bool {
	if h.orch.Receive(msg.Set) {
		h.publish(domain.SuggestionsReceivedEvent{Term: msg.Set.Term, Count: msg.Set.Len()})
		return true
	}
	h.logger.Debug("dropping stale suggestions",
		zap.String("term", msg.Set.Term),
		zap.String("expected", h.orch.ExpectedTerm()))
	h.publish(domain.SuggestionsDroppedEvent{Term: msg.Set.Term, Expected: h.orch.ExpectedTerm()})
	return false
}

// HandleFailure records a failed fetch. It reports whether the failure was for
// the term the prompt is still waiting on.
func (h *EventHandler) HandleFailure(msg commands.SuggestionsFailedMsg) bool {
	current := h.orch.Fail(msg.Term, msg.Err)
	h.logger.Warn("suggestion fetch failed",
		zap.String("engine", msg.EngineID),
		zap.String("term", msg.Term),
		zap.Bool("current", current),
		zap.Error(msg.Err))
	h.publish(domain.SuggestionsFailedEvent{Term: msg.Term, Err: msg.Err})
	return current
}

// HandleOpened logs and publishes a launch failure, if any
func (h *EventHandler) HandleOpened(msg commands.OpenedMsg) {
	if msg.Err == nil {
		return
	}
	h.logger.Error("browser launch failed", zap.String("url", msg.URL), zap.Error(msg.Err))
	h.publish(domain.BrowserLaunchFailedEvent{URL: msg.URL, Err: msg.Err})
}

func (h *EventHandler) publish(event domain.DomainEvent) {
	if h.bus != nil {
		h.bus.Publish(event)
	}
}
