package config

import "time"

// FetchConfig tunes suggestion fetching
type FetchConfig struct {
	TimeoutMS      int `toml:"timeout_ms"`
	DebounceMS     int `toml:"debounce_ms"`
	CacheSize      int `toml:"cache_size"` // negative disables the cache
	CacheTTLS      int `toml:"cache_ttl_s"`
	MaxSuggestions int `toml:"max_suggestions"`
}

const (
	defaultTimeoutMS      = 5000
	defaultCacheSize      = 128
	defaultCacheTTLS      = 120
	defaultMaxSuggestions = 15
)

func (f FetchConfig) withDefaults() FetchConfig {
	if f.TimeoutMS <= 0 {
		f.TimeoutMS = defaultTimeoutMS
	}
	if f.DebounceMS < 0 {
		f.DebounceMS = 0
	}
	if f.CacheSize == 0 {
		f.CacheSize = defaultCacheSize
	}
	if f.CacheTTLS <= 0 {
		f.CacheTTLS = defaultCacheTTLS
	}
	if f.MaxSuggestions <= 0 {
		f.MaxSuggestions = defaultMaxSuggestions
	}
	return f
}

func (f FetchConfig) Timeout() time.Duration  { return time.Duration(f.TimeoutMS) * time.Millisecond }
func (f FetchConfig) Debounce() time.Duration { return time.Duration(f.DebounceMS) * time.Millisecond }
func (f FetchConfig) CacheTTL() time.Duration { return time.Duration(f.CacheTTLS) * time.Second }

const googleSuggest = "https://www.google.com/complete/search?client=chrome&q=%s"

func strPtr(s string) *string { return &s }

// DefaultConfig returns the built-in engines, fetch settings and keybinds
func DefaultConfig() *Config {
	white := PromptConfig{TextFg: "black", TextBg: "white"}
	prompt := func(icon, fg, bg, text string) PromptConfig {
		p := white
		p.Icon, p.IconFg, p.IconBg, p.Text = icon, fg, bg, text
		return p
	}

	return &Config{
		Engines: map[string]EngineConfig{
			DefaultEngineKey: {
				Name:          "Google",
				SuggestionURL: googleSuggest,
				SearchURL:     "https://www.google.com/search?q=%s",
				Prompt:        prompt(" g ", "white", "blue", " Google "),
			},
			"ddg": {
				Name:          "DuckDuckGo",
				SuggestionURL: "https://duckduckgo.com/ac/?q=%s&type=list",
				SearchURL:     "https://duckduckgo.com/?q=%s",
				Prompt:        prompt(" ♞ ", "white", "#de5833", ""),
			},
			"g": {
				Name:          "Google (I'm Feeling Lucky)",
				SuggestionURL: googleSuggest,
				SearchURL:     "https://www.google.com/search?btnI&q=%s",
				Prompt:        prompt(" g ", "white", "blue", " I'm Feeling Lucky "),
			},
			"red": {
				Name:          "Reddit",
				SuggestionURL: googleSuggest,
				SearchURL:     "https://www.google.com/search?q=site:reddit.com+%s",
				Prompt:        prompt(" ⬬ ", "white", "#ff4500", ""),
			},
			"wkt": {
				Name:          "Wiktionary",
				SuggestionURL: "https://en.wiktionary.org/w/api.php?action=opensearch&search=%s&limit=15&namespace=0&format=json",
				SearchURL:     "https://www.wiktionary.org/search-redirect.php?family=wiktionary&language=en&search=%s&go=Go",
				Prompt:        prompt("['w]", "black", "white", ""),
			},
			"w": {
				Name:          "Wikipedia",
				SuggestionURL: "https://en.wikipedia.org/w/api.php?action=opensearch&search=%s&limit=15&namespace=0&format=json",
				SearchURL:     "https://www.wikipedia.org/search-redirect.php?family=wikipedia&language=en&search=%s&language=en&go=Go",
				Prompt:        prompt(" W ", "black", "white", ""),
			},
			"yt": {
				Name:          "YouTube",
				SuggestionURL: "http://suggestqueries.google.com/complete/search?client=firefox&ds=yt&q=%s",
				SearchURL:     "https://www.youtube.com/results?q=%s",
				Prompt:        prompt(" ▶ ", "white", "red", ""),
			},
			"r": {
				Name:          "Subreddit",
				SuggestionURL: "https://us-central1-subreddit-suggestions.cloudfunctions.net/suggest?query=%s",
				SearchURL:     "https://www.reddit.com/r/%s",
				SpaceBecomes:  strPtr(""), // subreddit names have no spaces
				Adapter:       AdapterConfig{Kind: "jsonpath", Path: "suggestions"},
				Prompt:        prompt(" ⬬ ", "white", "#ff4500", ""),
			},
		},
		Fetch: FetchConfig{}.withDefaults(),
		Keybinds: map[string]string{
			"<C-c>":     ActionExit,
			"<Esc>":     ActionExit,
			"<CR>":      ActionSubmit,
			"<C-w>":     ActionDeleteWord,
			"<C-n>":     ActionSelectNext,
			"<Tab>":     ActionSelectNext,
			"<Down>":    ActionSelectNext,
			"<C-p>":     ActionSelectPrev,
			"<BackTab>": ActionSelectPrev,
			"<Up>":      ActionSelectPrev,
			"<BS>":      ActionDeleteChar,
			"<C-u>":     ActionClearInput,
			"<F1>":      ActionShowHelp,
		},
		Source: SourceDefault,
	}
}
