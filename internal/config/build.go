package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"searchline/internal/domain"
)

// defaultPromptText is accepted as prompt text and means " <name> "
const defaultPromptText = "%%DEFAULT%%"

// Settings is a Config resolved into the types the rest of the program uses
type Settings struct {
	Engines  map[string]domain.Engine // keyed by prefix, "" is the default engine
	Keybinds []KeyBinding
	Fetch    FetchConfig
}

// Resolve converts the config into Settings. Invalid engines, colours and keybinds
// are left out and reported together in the returned error; the Settings are
// usable either way. Engine ids are passed through as written, apart from the
// default key, so the registry can report ids it refuses.
func (c *Config) Resolve() (*Settings, error) {
	var result *multierror.Error

	s := &Settings{
		Engines: make(map[string]domain.Engine, len(c.Engines)),
		Fetch:   c.Fetch.withDefaults(),
	}

	keys := make([]string, 0, len(c.Engines))
	for k := range c.Engines {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		id := key
		if key == DefaultEngineKey {
			id = ""
		}
		eng, errs := c.Engines[key].toEngine(id)
		for _, err := range errs {
			result = multierror.Append(result, fmt.Errorf("engine %q: %w", key, err))
		}
		if eng != nil {
			s.Engines[id] = *eng
		}
	}

	binds, problems := ResolveKeybinds(c.Keybinds)
	for _, p := range problems {
		result = multierror.Append(result, p)
	}
	s.Keybinds = ensureExit(binds)

	return s, result.ErrorOrNil()
}

// toEngine returns nil when the engine cannot be used at all. Problems that only
// affect styling are reported but do not drop the engine.
func (ec EngineConfig) toEngine(id string) (*domain.Engine, []error) {
	var errs []error

	if strings.TrimSpace(ec.SearchURL) == "" {
		return nil, []error{fmt.Errorf("search_url is required")}
	}

	adapter, err := ec.Adapter.toSpec()
	if err != nil {
		return nil, []error{err}
	}

	spaceBecomes := "+"
	if ec.SpaceBecomes != nil {
		spaceBecomes = *ec.SpaceBecomes
	}

	name := ec.Name
	if name == "" {
		name = id
		if name == "" {
			name = "Default"
		}
	}

	text := ec.Prompt.Text
	if text == "" || text == defaultPromptText {
		text = " " + name + " "
	}

	color := func(field, v string) string {
		c, err := NormalizeColor(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("prompt.%s: %w", field, err))
		}
		return c
	}

	eng := &domain.Engine{
		ID:            id,
		Name:          name,
		SuggestionURL: ec.SuggestionURL,
		SearchURL:     ec.SearchURL,
		SpaceBecomes:  spaceBecomes,
		Adapter:       adapter,
		Prompt: domain.Prompt{
			Icon:   ec.Prompt.Icon,
			IconFg: color("icon_fg", ec.Prompt.IconFg),
			IconBg: color("icon_bg", ec.Prompt.IconBg),
			Text:   text,
			TextFg: color("text_fg", ec.Prompt.TextFg),
			TextBg: color("text_bg", ec.Prompt.TextBg),
		},
	}
	return eng, errs
}

func (ac AdapterConfig) toSpec() (domain.AdapterSpec, error) {
	switch domain.AdapterKind(strings.ToLower(ac.Kind)) {
	case "", domain.AdapterOpenSearch:
		return domain.AdapterSpec{Kind: domain.AdapterOpenSearch}, nil
	case domain.AdapterJSONPath:
		if strings.TrimSpace(ac.Path) == "" {
			return domain.AdapterSpec{}, fmt.Errorf("adapter.path is required for jsonpath")
		}
		return domain.AdapterSpec{Kind: domain.AdapterJSONPath, Path: ac.Path}, nil
	default:
		return domain.AdapterSpec{}, fmt.Errorf("unknown adapter kind %q (use opensearch or jsonpath)", ac.Kind)
	}
}

// ensureExit keeps the prompt escapable when the keybinds table binds no Exit key
func ensureExit(binds []KeyBinding) []KeyBinding {
	for _, b := range binds {
		if b.Action == ActionExit {
			return binds
		}
	}
	for _, b := range binds {
		if b.Key == "ctrl+c" {
			return binds
		}
	}
	out := append([]KeyBinding{{Spec: "<C-c>", Key: "ctrl+c", Action: ActionExit}}, binds...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Spec < out[j].Spec
	})
	return out
}
