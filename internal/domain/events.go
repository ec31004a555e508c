package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigFallback       EventType = "ConfigFallback"
	EventSuggestionsRequested EventType = "SuggestionsRequested"
	EventSuggestionsReceived  EventType = "SuggestionsReceived"
	EventSuggestionsDropped   EventType = "SuggestionsDropped"
	EventSuggestionsFailed    EventType = "SuggestionsFailed"
	EventQuerySubmitted       EventType = "QuerySubmitted"
	EventBrowserLaunchFailed  EventType = "BrowserLaunchFailed"
)

// AllEventTypes lists every event type, in declaration order
var AllEventTypes = []EventType{
	EventConfigLoaded,
	EventConfigFallback,
	EventSuggestionsRequested,
	EventSuggestionsReceived,
	EventSuggestionsDropped,
	EventSuggestionsFailed,
	EventQuerySubmitted,
	EventBrowserLaunchFailed,
}

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ConfigLoadedEvent is emitted once the engine registry is ready
type ConfigLoadedEvent struct {
	Path    string
	Engines int
	Keys    int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigFallbackEvent is emitted when the built-in defaults replaced a broken config
type ConfigFallbackEvent struct {
	Path string
	Err  error
}

func (e ConfigFallbackEvent) Type() EventType { return EventConfigFallback }

// SuggestionsRequestedEvent is emitted when a fetch is dispatched
type SuggestionsRequestedEvent struct {
	EngineID string
	Term     string
}

func (e SuggestionsRequestedEvent) Type() EventType { return EventSuggestionsRequested }

// SuggestionsReceivedEvent is emitted when a fetch result becomes the displayed set
type SuggestionsReceivedEvent struct {
	Term  string
	Count int
}

func (e SuggestionsReceivedEvent) Type() EventType { return EventSuggestionsReceived }

// SuggestionsDroppedEvent is emitted when a stale fetch result is discarded
type SuggestionsDroppedEvent struct {
	Term     string
	Expected string
}

func (e SuggestionsDroppedEvent) Type() EventType { return EventSuggestionsDropped }

// SuggestionsFailedEvent is emitted when a fetch or its response parsing fails
type SuggestionsFailedEvent struct {
	Term string
	Err  error
}

func (e SuggestionsFailedEvent) Type() EventType { return EventSuggestionsFailed }

// QuerySubmittedEvent is emitted when the user submits the line
type QuerySubmittedEvent struct {
	EngineID string
	Term     string
	URL      string
}

func (e QuerySubmittedEvent) Type() EventType { return EventQuerySubmitted }

// BrowserLaunchFailedEvent is emitted when the resolved URL could not be opened
type BrowserLaunchFailedEvent struct {
	URL string
	Err error
}

func (e BrowserLaunchFailedEvent) Type() EventType { return EventBrowserLaunchFailed }
