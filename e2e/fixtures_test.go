//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary directory used as $HOME for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// StartSuggestServer serves OpenSearch suggestions: three candidates built from the term
func (tf *TUITestFramework) StartSuggestServer() *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		body, _ := json.Marshal([]any{q, []string{q + " alpha", q + " beta", q + " gamma"}})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	tf.t.Cleanup(srv.Close)
	return srv
}

// WriteConfig writes a config with a default engine and a "yt" engine, both
// backed by the suggestion server, and returns its path.
func (tf *TUITestFramework) WriteConfig(suggestURL string) (string, error) {
	body := fmt.Sprintf(`
[engines._default]
name = "Test"
suggestion_url = "%[1]s/complete?q=%%s"
search_url = "https://search.test/?q=%%s"

[engines._default.prompt]
icon = " t "

[engines.yt]
name = "Tube"
suggestion_url = "%[1]s/complete?q=%%s"
search_url = "https://tube.test/results?search_query=%%s"

[engines.yt.prompt]
icon = " yt "
`, suggestURL)
	return tf.WriteRawConfig(body)
}

// WriteRawConfig writes body as the config file and returns its path
func (tf *TUITestFramework) WriteRawConfig(body string) (string, error) {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return "", err
		}
	}
	path := filepath.Join(tf.workspace, "searchline.toml")
	return path, os.WriteFile(path, []byte(strings.TrimLeft(body, "\n")), 0o644)
}

// FakeBrowser installs a script that records the URL it is asked to open and
// points $BROWSER at it. It returns the file the URL is written to.
func (tf *TUITestFramework) FakeBrowser() (string, error) {
	if tf.workspace == "" {
		if _, err := tf.CreateTestWorkspace(); err != nil {
			return "", err
		}
	}
	out := filepath.Join(tf.workspace, "opened.txt")
	script := filepath.Join(tf.workspace, "fake-browser")
	body := fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$1\" > %q\n", out)
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		return "", err
	}
	tf.SetEnv("BROWSER", script)
	return out, nil
}
