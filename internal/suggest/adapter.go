package suggest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"searchline/internal/domain"
)

// Adapter turns a suggestion response body into candidate strings
type Adapter interface {
	Kind() domain.AdapterKind
	Parse(body []byte) ([]string, error)
}

// NewAdapter returns the adapter for an engine's adapter spec
func NewAdapter(spec domain.AdapterSpec) (Adapter, error) {
	switch spec.Kind {
	case "", domain.AdapterOpenSearch:
		return OpenSearchAdapter{}, nil
	case domain.AdapterJSONPath:
		return NewJSONPathAdapter(spec.Path), nil
	default:
		return nil, &AdapterError{Kind: spec.Kind, Err: errors.New("unknown adapter kind")}
	}
}

// OpenSearchAdapter parses `[term, [suggestion, ...], ...]` bodies
type OpenSearchAdapter struct{}

func (OpenSearchAdapter) Kind() domain.AdapterKind { return domain.AdapterOpenSearch }

func (a OpenSearchAdapter) Parse(body []byte) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, a.fail(fmt.Errorf("body is not a JSON array: %w", err))
	}
	if len(parts) < 2 {
		return nil, a.fail(fmt.Errorf("expected at least 2 elements, got %d", len(parts)))
	}

	if !isKind(parts[0], '"') {
		return nil, a.fail(errors.New("first element is not a string"))
	}

	var raw []json.RawMessage
	if !isKind(parts[1], '[') {
		return nil, a.fail(errors.New("second element is not an array"))
	}
	if err := json.Unmarshal(parts[1], &raw); err != nil {
		return nil, a.fail(err)
	}
	return stringsOf(raw, a.fail)
}

func (OpenSearchAdapter) fail(err error) error {
	return &AdapterError{Kind: domain.AdapterOpenSearch, Err: err}
}

// JSONPathAdapter walks a dotted path through the JSON body to an array of strings.
// Numeric segments index into arrays.
type JSONPathAdapter struct {
	path     string
	segments []string
}

func NewJSONPathAdapter(path string) JSONPathAdapter {
	var segments []string
	if path != "" {
		segments = strings.Split(path, ".")
	}
	return JSONPathAdapter{path: path, segments: segments}
}

func (JSONPathAdapter) Kind() domain.AdapterKind { return domain.AdapterJSONPath }

func (a JSONPathAdapter) Parse(body []byte) ([]string, error) {
	var node json.RawMessage
	if err := json.Unmarshal(body, &node); err != nil {
		return nil, a.fail(fmt.Errorf("body is not valid JSON: %w", err))
	}

	for i, seg := range a.segments {
		next, err := step(node, seg)
		if err != nil {
			return nil, a.fail(fmt.Errorf("path %q at %q: %w", a.path, strings.Join(a.segments[:i+1], "."), err))
		}
		node = next
	}

	var raw []json.RawMessage
	if !isKind(node, '[') {
		return nil, a.fail(fmt.Errorf("path %q does not lead to an array", a.path))
	}
	if err := json.Unmarshal(node, &raw); err != nil {
		return nil, a.fail(err)
	}
	return stringsOf(raw, a.fail)
}

func (a JSONPathAdapter) fail(err error) error {
	return &AdapterError{Kind: domain.AdapterJSONPath, Err: err}
}

func step(node json.RawMessage, seg string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(node)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		child, ok := obj[seg]
		if !ok {
			return nil, errors.New("no such field")
		}
		return child, nil
	case '[':
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, errors.New("cannot index an array with a field name")
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(arr) {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		return arr[idx], nil
	default:
		return nil, errors.New("not an object or array")
	}
}

func stringsOf(raw []json.RawMessage, fail func(error) error) ([]string, error) {
	out := make([]string, 0, len(raw))
	for i, r := range raw {
		var s string
		if !isKind(r, '"') {
			return nil, fail(fmt.Errorf("element %d is not a string", i))
		}
		if err := json.Unmarshal(r, &s); err != nil {
			return nil, fail(fmt.Errorf("element %d is not a string", i))
		}
		out = append(out, s)
	}
	return out, nil
}

// isKind reports whether the raw JSON value starts with the given delimiter
func isKind(raw json.RawMessage, first byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == first
}
