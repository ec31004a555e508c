package suggest

import (
	"fmt"

	"searchline/internal/domain"
)

// FetchError reports a suggestion request that did not produce a usable body:
// transport failure, timeout or a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AdapterError reports a response body that does not have the shape the engine's
// adapter expects.
type AdapterError struct {
	Kind domain.AdapterKind
	URL  string
	Err  error
}

func (e *AdapterError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s adapter: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s adapter for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }
