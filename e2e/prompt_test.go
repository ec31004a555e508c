//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWithServer(t *testing.T, tf *TUITestFramework, args ...string) {
	t.Helper()
	srv := tf.StartSuggestServer()
	cfg, err := tf.WriteConfig(srv.URL)
	require.NoError(t, err)

	require.NoError(t, tf.StartApp(append([]string{"--config", cfg}, args...)...))
	require.True(t, tf.Ready(), "Should receive ready signal")
}

func TestSuggestionsAppear(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithServer(t, tf)

	require.NoError(t, tf.Type("cat"))
	if !tf.SeePlain("cat gamma") {
		tf.DumpTailOnFail(t, "suggestions", 4096)
		t.Fatal("Suggestions for the typed term should be listed")
	}
}

func TestPreviewAndPrint(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithServer(t, tf, "--print")

	require.NoError(t, tf.Type("yt cat"))
	require.True(t, tf.SeePlain("cat beta"), "Should list suggestions for the yt engine")

	require.NoError(t, tf.SendKeys(KeyTab))
	require.NoError(t, tf.SendKeys(KeyTab))
	require.True(t, tf.SeePlain("yt cat beta_"), "Second Tab previews the second suggestion")

	require.NoError(t, tf.SendEnter())
	code, exited := tf.WaitExit(3 * time.Second)
	require.True(t, exited, "Enter should end the prompt")
	assert.Equal(t, 0, code)
	assert.True(t, tf.SeePlain("https://tube.test/results?search_query=cat+beta"))
}

func TestInitialQueryFromArgs(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithServer(t, tf, "--print", "yt", "dogs")

	require.True(t, tf.SeePlain("dogs alpha"), "Initial query should fetch suggestions")
	require.NoError(t, tf.SendEnter())
	_, exited := tf.WaitExit(3 * time.Second)
	require.True(t, exited)
	assert.True(t, tf.SeePlain("https://tube.test/results?search_query=dogs"))
}

func TestEscExits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithServer(t, tf)
	require.NoError(t, tf.Type("abc"))
	require.NoError(t, tf.SendKeys(KeyEsc))

	code, exited := tf.WaitExit(3 * time.Second)
	if !exited {
		// Esc alone can be held back while the terminal waits for a sequence
		require.NoError(t, tf.SendCtrlC())
		code, exited = tf.WaitExit(2 * time.Second)
	}
	require.True(t, exited, "Exit key should end the prompt")
	assert.Equal(t, 0, code)
}

func TestSubmitOpensBrowser(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	opened, err := tf.FakeBrowser()
	require.NoError(t, err)
	startWithServer(t, tf)

	require.NoError(t, tf.Type("two words"))
	require.NoError(t, tf.SendEnter())

	code, exited := tf.WaitExit(3 * time.Second)
	require.True(t, exited)
	assert.Equal(t, 0, code)
	assert.True(t, tf.SeePlain("Opening https://search.test/?q=two+words"))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(opened)
		return err == nil && strings.TrimSpace(string(data)) == "https://search.test/?q=two+words"
	}, 3*time.Second, 25*time.Millisecond)
}

func TestBrowserLaunchFailureExitsNonZero(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	empty := filepath.Join(tf.workspace, "empty-bin")
	require.NoError(t, os.MkdirAll(empty, 0o755))
	tf.SetEnv("PATH", empty)
	tf.SetEnv("BROWSER", "")

	startWithServer(t, tf)
	require.NoError(t, tf.Type("x"))
	require.NoError(t, tf.SendEnter())

	code, exited := tf.WaitExit(3 * time.Second)
	require.True(t, exited)
	assert.Equal(t, 1, code)
	assert.True(t, tf.SeePlain("failed to open https://search.test/?q=x"))
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startWithServer(t, tf)

	require.NoError(t, tf.SendKeys(KeyF1))
	require.True(t, tf.SeePlain("searchline help"), "F1 should open the help pager")
	require.True(t, tf.SeePlain("Tube"), "Help lists the engines")

	// Quit the pager and keep typing in the prompt
	require.NoError(t, tf.SendKeys("q"))
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, tf.Type("zebra"))
	require.True(t, tf.SeePlain("zebra gamma"), "Prompt should work again after the pager closes")
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	cfg, err := tf.WriteRawConfig("[engines\n")
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("--config", cfg, "--print"))
	require.True(t, tf.SeePlain("using built-in defaults"), "Should print a notice for the broken config")
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyCtrlC))
	_, exited := tf.WaitExit(3 * time.Second)
	require.True(t, exited)
}
