package browser

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// EnvBrowser overrides the command used to open URLs, as in $BROWSER
const EnvBrowser = "BROWSER"

// Opener opens a resolved search URL
type Opener interface {
	Open(ctx context.Context, url string) error
}

// LaunchError is returned when the browser could not be started. It is fatal
// for the prompt: the loop ends and the program exits non-zero.
type LaunchError struct {
	URL     string
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to open %s with %s: %v", e.URL, e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// launchGrace is how long a $BROWSER command has to fail before it is taken to
// be the browser itself and left running
const launchGrace = 500 * time.Millisecond

// SystemOpener hands URLs to the platform's URL handler. The handlers (xdg-open,
// open, rundll32) return as soon as the browser has the URL, so their exit
// status is checked. A $BROWSER command may be the browser itself and is left
// running once it has survived launchGrace.
type SystemOpener struct {
	logger   *zap.Logger
	goos     string
	getenv   func(string) string
	run      func(cmd *exec.Cmd) error
	start    func(cmd *exec.Cmd) error
	lookPath func(string) (string, error)
	grace    time.Duration
}

// NewSystemOpener creates an opener for the running platform
func NewSystemOpener(logger *zap.Logger) *SystemOpener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemOpener{
		logger:   logger,
		goos:     runtime.GOOS,
		getenv:   os.Getenv,
		run:      func(cmd *exec.Cmd) error { return cmd.Run() },
		start:    func(cmd *exec.Cmd) error { return cmd.Start() },
		lookPath: exec.LookPath,
		grace:    launchGrace,
	}
}

// Command returns the program and arguments that would open url
func (o *SystemOpener) Command(url string) (string, []string) {
	name, args, _ := o.command(url)
	return name, args
}

func (o *SystemOpener) command(url string) (name string, args []string, fromEnv bool) {
	if b := strings.TrimSpace(o.getenv(EnvBrowser)); b != "" {
		// $BROWSER may list several commands separated by ':', use the first one found
		for _, candidate := range strings.Split(b, ":") {
			fields := strings.Fields(candidate)
			if len(fields) == 0 {
				continue
			}
			if _, err := o.lookPath(fields[0]); err == nil {
				return fields[0], append(fields[1:], url), true
			}
		}
	}

	switch o.goos {
	case "darwin":
		return "open", []string{url}, false
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, false
	default:
		return "xdg-open", []string{url}, false
	}
}

func (o *SystemOpener) Open(ctx context.Context, url string) error {
	name, args, fromEnv := o.command(url)
	o.logger.Info("Opening browser", zap.String("cmd", name), zap.String("url", url))

	if !fromEnv {
		cmd := exec.CommandContext(ctx, name, args...)
		if err := o.run(cmd); err != nil {
			return &LaunchError{URL: url, Command: name, Err: err}
		}
		return nil
	}

	// The browser outlives us, so it is not bound to ctx
	cmd := exec.Command(name, args...)
	if err := o.start(cmd); err != nil {
		return &LaunchError{URL: url, Command: name, Err: err}
	}
	if cmd.Process == nil {
		return nil
	}

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	timer := time.NewTimer(o.grace)
	defer timer.Stop()

	select {
	case err := <-exited:
		if err != nil {
			return &LaunchError{URL: url, Command: name, Err: err}
		}
		return nil
	case <-timer.C:
		o.logger.Debug("browser still running, leaving it", zap.String("cmd", name))
		return nil
	case <-ctx.Done():
		// Already started, so the launch itself succeeded
		return nil
	}
}

// PrintOpener writes the URL instead of opening it (--print)
type PrintOpener struct {
	W io.Writer
}

func (o PrintOpener) Open(_ context.Context, url string) error {
	if _, err := fmt.Fprintln(o.W, url); err != nil {
		return &LaunchError{URL: url, Command: "print", Err: err}
	}
	return nil
}
