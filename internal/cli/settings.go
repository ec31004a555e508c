package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"searchline/internal/config"
	"searchline/internal/domain"
	"searchline/internal/engine"
	"searchline/internal/eventbus"
)

type loadedSettings struct {
	path     string
	settings *config.Settings
	registry *engine.Registry
	notices  []string // printed once before the prompt starts
	problems error    // entries that were skipped, the rest is usable
}

func (l *loadedSettings) problemNotice() string {
	if l.problems == nil {
		return ""
	}
	n := 1
	var merr *multierror.Error
	if errors.As(l.problems, &merr) {
		n = len(merr.Errors)
	}
	if n == 1 {
		return fmt.Sprintf("config: %v", l.problems)
	}
	return fmt.Sprintf("config: %d entries were skipped, see the log or run \"searchline engines\"", n)
}

// loadSettings reads the config file and builds the engine registry. A config
// that cannot be used at all is replaced by the built-in defaults with a
// notice; only errors outside the config itself are returned.
func loadSettings(svc config.ConfigService, bus eventbus.EventBus, logger *zap.Logger) (*loadedSettings, error) {
	l := &loadedSettings{path: svc.Path()}

	fallback := func(err error) *config.Config {
		l.notices = append(l.notices, fmt.Sprintf("%v; using built-in defaults", err))
		logger.Warn("Falling back to default config", zap.String("path", l.path), zap.Error(err))
		bus.Publish(domain.ConfigFallbackEvent{Path: l.path, Err: err})
		cfg := config.DefaultConfig()
		cfg.Source = config.SourceDefault
		return cfg
	}

	cfg, err := svc.Load()
	if err != nil {
		var cfgErr *config.ConfigError
		if !errors.As(err, &cfgErr) {
			return nil, err
		}
		cfg = fallback(err)
	} else if cfg.Source == config.SourceCreated {
		l.notices = append(l.notices, fmt.Sprintf("Created default config at %s", l.path))
	}

	settings, problems := cfg.Resolve()
	reg, regErr := engine.NewRegistry(settings.Engines)
	if errors.Is(regErr, engine.ErrNoDefaultEngine) {
		cfg = fallback(&config.ConfigError{Path: l.path, Err: regErr})
		settings, problems = cfg.Resolve()
		reg, regErr = engine.NewRegistry(settings.Engines)
		if regErr != nil {
			return nil, fmt.Errorf("built-in engines are invalid: %w", regErr)
		}
	}

	l.settings = settings
	l.registry = reg
	l.problems = multierror.Append(problems, regErr).ErrorOrNil()
	if l.problems != nil {
		logger.Warn("Config entries skipped", zap.String("path", l.path), zap.Error(l.problems))
	}

	bus.Publish(domain.ConfigLoadedEvent{Path: l.path, Engines: reg.Len(), Keys: len(settings.Keybinds)})
	return l, nil
}
