package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Bindable action names, as written in the [keybinds] table
const (
	ActionSubmit     = "Submit"
	ActionSelectNext = "SelectNext"
	ActionSelectPrev = "SelectPrev"
	ActionDeleteChar = "DeleteChar"
	ActionDeleteWord = "DeleteWord"
	ActionClearInput = "ClearInput"
	ActionExit       = "Exit"
	ActionShowHelp   = "ShowHelp"
)

// KnownActions lists every bindable action
var KnownActions = []string{
	ActionSubmit,
	ActionSelectNext,
	ActionSelectPrev,
	ActionDeleteChar,
	ActionDeleteWord,
	ActionClearInput,
	ActionExit,
	ActionShowHelp,
}

func isKnownAction(name string) bool {
	for _, a := range KnownActions {
		if a == name {
			return true
		}
	}
	return false
}

// KeyBinding is one resolved keybind
type KeyBinding struct {
	Spec   string // as written in the config, e.g. "<C-n>"
	Key    string // terminal key name as reported by the UI runtime, e.g. "ctrl+n"
	Action string
}

var namedKeys = map[string]string{
	"cr":        "enter",
	"enter":     "enter",
	"return":    "enter",
	"tab":       "tab",
	"backtab":   "shift+tab",
	"bs":        "backspace",
	"backspace": "backspace",
	"esc":       "esc",
	"escape":    "esc",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"home":      "home",
	"end":       "end",
	"pageup":    "pgup",
	"pgup":      "pgup",
	"pagedown":  "pgdown",
	"pgdown":    "pgdown",
	"del":       "delete",
	"delete":    "delete",
	"insert":    "insert",
	"ins":       "insert",
	"space":     " ",
	"null":      "ctrl+@",
	"nul":       "ctrl+@",
	"lt":        "<",
}

// Control combos the terminal reports under another name
var ctrlAliases = map[string]string{
	"i":     "tab",
	"m":     "enter",
	"[":     "esc",
	"@":     "ctrl+@",
	"space": "ctrl+@",
}

// Keys that also accept a ctrl modifier
var ctrlNamed = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
}

// ParseKey converts keybind syntax (a single character, <C-x>, <M-x>, <A-x>,
// <F1>..<F20> or a named key such as <Tab>) into the terminal key name.
func ParseKey(spec string) (string, error) {
	if spec == "" {
		return "", fmt.Errorf("empty key")
	}
	if utf8.RuneCountInString(spec) == 1 {
		return spec, nil
	}
	if !strings.HasPrefix(spec, "<") || !strings.HasSuffix(spec, ">") {
		return "", fmt.Errorf("unrecognized key format %q (expected a character or <...>)", spec)
	}
	inside := spec[1 : len(spec)-1]
	key, err := parseInside(inside)
	if err != nil {
		return "", fmt.Errorf("%q: %w", spec, err)
	}
	return key, nil
}

func parseInside(inside string) (string, error) {
	if inside == "" {
		return "", fmt.Errorf("empty key")
	}
	if utf8.RuneCountInString(inside) == 1 {
		return inside, nil
	}

	lower := strings.ToLower(inside)
	if named, ok := namedKeys[lower]; ok {
		return named, nil
	}

	if len(lower) > 1 && lower[0] == 'f' {
		if n, err := strconv.Atoi(lower[1:]); err == nil {
			if n < 1 || n > 20 {
				return "", fmt.Errorf("function key out of range (F1 to F20)")
			}
			return "f" + strconv.Itoa(n), nil
		}
	}

	if len(inside) > 2 && inside[1] == '-' {
		rest := inside[2:]
		switch lower[0] {
		case 'c':
			return parseCtrl(rest)
		case 'm', 'a':
			key, err := parseInside(rest)
			if err != nil {
				return "", err
			}
			return "alt+" + key, nil
		default:
			return "", fmt.Errorf("unrecognized modifier %q (use C-, M- or A-)", inside[:2])
		}
	}

	return "", fmt.Errorf("unrecognized special key")
}

func parseCtrl(rest string) (string, error) {
	lower := strings.ToLower(rest)
	if alias, ok := ctrlAliases[lower]; ok {
		return alias, nil
	}
	if utf8.RuneCountInString(rest) == 1 {
		c := lower[0]
		if (c >= 'a' && c <= 'z') || strings.IndexByte(`\]^_`, c) >= 0 {
			return "ctrl+" + lower, nil
		}
		return "", fmt.Errorf("no ctrl combo for %q", rest)
	}
	if named, ok := namedKeys[lower]; ok && ctrlNamed[named] {
		return "ctrl+" + named, nil
	}
	return "", fmt.Errorf("no ctrl combo for %q", rest)
}

// ResolveKeybinds parses every keybind. Invalid entries are skipped and returned as problems.
// The result is sorted by action then key spec so help output is stable.
func ResolveKeybinds(binds map[string]string) ([]KeyBinding, []error) {
	var out []KeyBinding
	var problems []error
	seen := make(map[string]string, len(binds))

	specs := make([]string, 0, len(binds))
	for spec := range binds {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		action := binds[spec]
		if !isKnownAction(action) {
			problems = append(problems, fmt.Errorf("keybind %q: unknown action %q", spec, action))
			continue
		}
		key, err := ParseKey(spec)
		if err != nil {
			problems = append(problems, fmt.Errorf("keybind %w", err))
			continue
		}
		if prev, dup := seen[key]; dup {
			problems = append(problems, fmt.Errorf("keybind %q: key already bound by %q", spec, prev))
			continue
		}
		seen[key] = spec
		out = append(out, KeyBinding{Spec: spec, Key: key, Action: action})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Spec < out[j].Spec
	})
	return out, problems
}
