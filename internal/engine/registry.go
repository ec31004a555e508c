package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"

	"searchline/internal/domain"
)

// ErrNoDefaultEngine is returned when no engine is registered under the empty id
var ErrNoDefaultEngine = errors.New("no default engine configured")

// InvalidIDError reports an engine id that was left out of the registry
type InvalidIDError struct {
	ID   string
	Name string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("prefixes have to be a single word, so engine %q with prefix %q is ignored", e.Name, e.ID)
}

// Registry is the immutable table of engines, built once at startup
type Registry struct {
	engines map[string]*domain.Engine
	ids     []string
}

// NewRegistry builds a registry from engines keyed by prefix. Entries whose id
// contains whitespace are excluded; when any are, the registry is returned
// together with an error listing them. Without a default engine no registry is
// built.
func NewRegistry(engines map[string]domain.Engine) (*Registry, error) {
	if _, ok := engines[""]; !ok {
		return nil, ErrNoDefaultEngine
	}

	var result *multierror.Error
	r := &Registry{engines: make(map[string]*domain.Engine, len(engines))}

	for id, eng := range engines {
		if strings.IndexFunc(id, unicode.IsSpace) >= 0 {
			result = multierror.Append(result, &InvalidIDError{ID: id, Name: eng.Name})
			continue
		}
		e := eng
		e.ID = id
		r.engines[id] = &e
		r.ids = append(r.ids, id)
	}
	// "" sorts first, which keeps the default engine at the top of listings
	sort.Strings(r.ids)

	if result != nil {
		sort.Slice(result.Errors, func(i, j int) bool {
			return result.Errors[i].Error() < result.Errors[j].Error()
		})
	}
	return r, result.ErrorOrNil()
}

// Default returns the engine used when no prefix matches
func (r *Registry) Default() *domain.Engine {
	return r.engines[""]
}

// Get looks up an engine by exact prefix
func (r *Registry) Get(id string) (*domain.Engine, bool) {
	e, ok := r.engines[id]
	return e, ok
}

// Has reports whether id is a registered prefix
func (r *Registry) Has(id string) bool {
	_, ok := r.engines[id]
	return ok
}

// IDs returns all registered ids, sorted, default first
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Len returns the number of engines
func (r *Registry) Len() int {
	return len(r.engines)
}
