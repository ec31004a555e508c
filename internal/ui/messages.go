package ui

import (
	"searchline/internal/ui/orchestrator"
)

// debounceElapsedMsg asks the loop whether a delayed fetch is still wanted
type debounceElapsedMsg struct {
	req orchestrator.FetchRequest
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
