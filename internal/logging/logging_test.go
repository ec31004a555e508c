package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")

	logger, cleanup, err := New(Options{Path: path})
	require.NoError(t, err)

	logger.Info("hello", zap.String("term", "cats"))
	logger.Debug("hidden")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"term":"cats"`)
	assert.NotContains(t, out, "hidden")
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, cleanup, err := New(Options{Path: path, Debug: true})
	require.NoError(t, err)
	logger.Debug("visible")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "visible"))
}

func TestNewOrNopFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// A regular file in the directory position cannot be created
	logger, cleanup := NewOrNop(Options{Path: filepath.Join(blocker, "app.log")})
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("dropped")
		cleanup()
	})
}

func TestDefaultPathUsesStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "searchline", "searchline.log"), path)
}
