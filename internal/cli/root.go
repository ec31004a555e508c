package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"searchline/internal/browser"
	"searchline/internal/config"
	"searchline/internal/eventbus"
	"searchline/internal/logging"
	"searchline/internal/suggest"
	"searchline/internal/ui"
)

// Version is set at build time with -ldflags "-X searchline/internal/cli.Version=..."
var Version = "dev"

// errLaunchFailed marks a run that ended because the browser could not be
// started. The message has already been printed.
var errLaunchFailed = errors.New("browser launch failed")

type rootOptions struct {
	configPath string
	logFile    string
	debug      bool
	print      bool
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	cmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errLaunchFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// NewRootCmd builds the searchline command tree
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "searchline [query...]",
		Short: "Type a query, pick a suggestion, open the search in your browser",
		Long: `searchline is a one-line search prompt for the terminal.

Start the line with an engine prefix and a space to pick an engine, e.g.
"yt cats" searches YouTube. Suggestions appear as you type; Tab and the
arrow keys cycle through them and Enter opens the search in your browser.

Run "searchline engines" to list the configured prefixes.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd.Context(), opts, strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.logFile, "log-file", "", "log file (default under $XDG_STATE_HOME/searchline)")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	root.Flags().BoolVarP(&opts.print, "print", "p", false, "print the search URL instead of opening a browser")

	root.AddCommand(
		newEnginesCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func runPrompt(ctx context.Context, opts *rootOptions, initial string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, cleanup := logging.NewOrNop(logging.Options{Path: opts.logFile, Debug: opts.debug})
	defer cleanup()

	bus := eventbus.New(logger)
	defer bus.Close()
	bus.SubscribeAll(logEvents(logger))

	loaded, err := loadSettings(config.NewConfigService(opts.configPath), bus, logger)
	if err != nil {
		return err
	}
	for _, n := range loaded.notices {
		fmt.Fprintln(stderr, n)
	}

	fetch := loaded.settings.Fetch
	fetcher := suggest.NewFetcher(suggest.Options{
		Timeout:   fetch.Timeout(),
		CacheSize: fetch.CacheSize,
		CacheTTL:  fetch.CacheTTL(),
		Logger:    logger,
	})
	defer fetcher.Close()

	var opener browser.Opener
	if !opts.print {
		opener = browser.NewSystemOpener(logger)
	}

	model := ui.NewModel(ui.Options{
		Registry:    loaded.registry,
		Source:      fetcher,
		Opener:      opener,
		Bus:         bus,
		Logger:      logger,
		Keybinds:    loaded.settings.Keybinds,
		Fetch:       fetch,
		InitialLine: initial,
		Notice:      loaded.problemNotice(),
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.print {
		// Keep stdout for the URL so the command can be used in $(...)
		programOpts = append(programOpts, tea.WithOutput(stderr))
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	logger.Info("Starting prompt", zap.String("initial", initial), zap.Bool("print", opts.print))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			logger.Info("Prompt interrupted")
			return nil
		}
		return fmt.Errorf("error running prompt: %w", err)
	}

	res := model.Result()
	if res.Err != nil {
		fmt.Fprintln(stderr, res.Err)
		return errLaunchFailed
	}
	if res.Submitted && opts.print {
		if err := (browser.PrintOpener{W: stdout}).Open(ctx, res.URL); err != nil {
			return err
		}
	}
	logger.Info("Prompt closed", zap.Bool("submitted", res.Submitted))
	return nil
}

// logEvents records every domain event in the log file
func logEvents(logger *zap.Logger) eventbus.EventHandler {
	l := logger.Named("events")
	return func(e eventbus.DomainEvent) {
		l.Debug(string(e.Type()), zap.Any("event", e))
	}
}
