package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const appDir = "searchline"

// Options controls where and how much the application logs
type Options struct {
	Path       string // empty selects DefaultPath()
	Debug      bool
	MaxSizeMB  int
	MaxBackups int
}

// DefaultPath returns the log file location: $XDG_STATE_HOME/searchline/searchline.log,
// falling back to the user cache directory.
func DefaultPath() (string, error) {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, appDir, appDir+".log"), nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "state", appDir, appDir+".log"), nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve log directory: %w", err)
	}
	return filepath.Join(cache, appDir, appDir+".log"), nil
}

// New builds a JSON logger writing to a rotating file. The terminal is never
// written to, since the prompt is drawn there.
func New(opts Options) (*zap.Logger, func(), error) {
	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// Open once up front so an unwritable location is reported here and not on first write
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	_ = f.Close()

	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = 5
	}
	maxBackups := opts.MaxBackups
	if maxBackups == 0 {
		maxBackups = 3
	}
	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     30,
		Compress:   true,
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotating), level)
	logger := zap.New(core).Named(appDir)

	cleanup := func() {
		_ = logger.Sync()
		_ = rotating.Close()
	}
	return logger, cleanup, nil
}

// NewOrNop is New, degrading to a no-op logger when the file cannot be opened
func NewOrNop(opts Options) (*zap.Logger, func()) {
	logger, cleanup, err := New(opts)
	if err != nil {
		return zap.NewNop(), func() {}
	}
	return logger, cleanup
}
