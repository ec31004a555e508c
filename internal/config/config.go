package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath overrides the config file location
const EnvConfigPath = "SEARCHLINE_CONFIG"

const (
	appDir   = "searchline"
	fileName = "config.toml"
)

// DefaultEngineKey is the table name of the engine used when no prefix matches
const DefaultEngineKey = "_default"

// Source records where a loaded Config came from
type Source int

const (
	SourceFile    Source = iota // read from an existing file
	SourceCreated               // file was missing and has been written with defaults
	SourceDefault               // built-in defaults, nothing on disk
)

// Config represents the application configuration
type Config struct {
	Engines  map[string]EngineConfig `toml:"engines"`
	Fetch    FetchConfig             `toml:"fetch"`
	Keybinds map[string]string       `toml:"keybinds"`

	Source Source `toml:"-"`
}

// EngineConfig is one [engines.<prefix>] table
type EngineConfig struct {
	Name          string        `toml:"name"`
	SuggestionURL string        `toml:"suggestion_url"`
	SearchURL     string        `toml:"search_url"`
	SpaceBecomes  *string       `toml:"space_becomes,omitempty"`
	Adapter       AdapterConfig `toml:"adapter,omitempty"`
	Prompt        PromptConfig  `toml:"prompt"`
}

// AdapterConfig selects the suggestion response parser
type AdapterConfig struct {
	Kind string `toml:"kind,omitempty"`
	Path string `toml:"path,omitempty"`
}

// PromptConfig styles the prompt while the engine is active
type PromptConfig struct {
	Icon   string `toml:"icon"`
	IconFg string `toml:"icon_fg,omitempty"`
	IconBg string `toml:"icon_bg,omitempty"`
	Text   string `toml:"text,omitempty"`
	TextFg string `toml:"text_fg,omitempty"`
	TextBg string `toml:"text_bg,omitempty"`
}

// ConfigError reports a config file that could not be used
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	return fmt.Sprintf("could not load config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// DefaultPath returns the config file location, honouring SEARCHLINE_CONFIG
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, appDir, fileName)
}

// NewConfigService creates a config service for path, or DefaultPath() when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file is created with the defaults.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.SaveToPath(cfg, cs.filePath); err != nil {
			// Defaults still work without a file on disk
			cfg.Source = SourceDefault
			return cfg, nil
		}
		cfg.Source = SourceCreated
		return cfg, nil
	}

	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read config file: %w", err)}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	cfg.Source = SourceFile
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes a TOML document. Missing sections fall back to the defaults;
// unknown keys are rejected so typos are reported instead of ignored.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, fmt.Errorf("failed to parse config at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	defaults := DefaultConfig()
	if len(cfg.Engines) == 0 {
		cfg.Engines = defaults.Engines
	}
	if cfg.Keybinds == nil {
		cfg.Keybinds = defaults.Keybinds
	}
	cfg.Fetch = cfg.Fetch.withDefaults()
	return &cfg, nil
}
