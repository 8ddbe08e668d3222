package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalaccel/config"
	"globalaccel/log"
)

const testActions = `
[[action]]
name = "Launchers"
label = true

[[action]]
name = "Terminal"
description = "Open a terminal"
default = "Ctrl+Alt+T"
command = "xterm"

[[action]]
name = "Browser"
default = "Meta+B"
command = "firefox"

[[action]]
name = "Screenshot"
default = "Print"
command = "scrot"
configurable = false
`

func setupHome(t *testing.T, actions string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(log.HomeEnv, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ActionsFileName), []byte(actions), 0644))
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(Platform{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func storedShortcut(t *testing.T, dir, name string) (string, bool) {
	t.Helper()
	s, err := config.OpenFileStore(dir)
	require.NoError(t, err)
	return s.ReadEntry(config.DefaultGroup, name)
}

func TestList(t *testing.T) {
	setupHome(t, testActions)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Launchers:")
	assert.Contains(t, out, "Alt+Ctrl+T")
	assert.Contains(t, out, "Open a terminal")
	assert.Contains(t, out, "(fixed)")
}

func TestSetAndReset(t *testing.T) {
	dir := setupHome(t, testActions)

	out, err := run(t, "set", "Terminal", "Ctrl+Alt+T;Meta+Return")
	require.NoError(t, err)
	assert.Contains(t, out, "Terminal: Alt+Ctrl+T;Meta+Return")

	v, ok := storedShortcut(t, dir, "Terminal")
	require.True(t, ok)
	assert.Equal(t, "default(Alt+Ctrl+T);Meta+Return", v)

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alt+Ctrl+T;Meta+Return")

	_, err = run(t, "reset", "Terminal")
	require.NoError(t, err)
	_, ok = storedShortcut(t, dir, "Terminal")
	assert.False(t, ok, "reset erases the stored entry")
}

func TestSetNone(t *testing.T) {
	dir := setupHome(t, testActions)

	out, err := run(t, "set", "Browser", "none")
	require.NoError(t, err)
	assert.Contains(t, out, "Browser: none")

	v, _ := storedShortcut(t, dir, "Browser")
	assert.Equal(t, "none", v)
}

func TestSetWarnsAboutSharedKeys(t *testing.T) {
	setupHome(t, testActions)

	out, err := run(t, "set", "Browser", "Ctrl+Alt+T")
	require.NoError(t, err)
	assert.Contains(t, out, "warning: Alt+Ctrl+T is also bound to Terminal")
}

func TestSetErrors(t *testing.T) {
	setupHome(t, testActions)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown action", []string{"set", "Nope", "Ctrl+N"}},
		{"label", []string{"set", "Launchers", "Ctrl+N"}},
		{"not configurable", []string{"set", "Screenshot", "Ctrl+N"}},
		{"bad shortcut", []string{"set", "Browser", "Ctrl+"}},
		{"missing argument", []string{"set", "Browser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestUnknownActionSuggestsNames(t *testing.T) {
	setupHome(t, testActions)

	_, err := run(t, "set", "Termnal", "Ctrl+N")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "Terminal"?`)
}

func TestResetAll(t *testing.T) {
	dir := setupHome(t, testActions)
	_, err := run(t, "set", "Terminal", "Meta+T")
	require.NoError(t, err)
	_, err = run(t, "set", "Browser", "none")
	require.NoError(t, err)

	_, err = run(t, "reset", "--all")
	require.NoError(t, err)
	_, ok := storedShortcut(t, dir, "Terminal")
	assert.False(t, ok)
	_, ok = storedShortcut(t, dir, "Browser")
	assert.False(t, ok)

	_, err = run(t, "reset", "--all", "Terminal")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	setupHome(t, testActions)

	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "no conflicts")

	_, err = run(t, "set", "Browser", "Print")
	require.NoError(t, err)
	out, err = run(t, "check")
	assert.Error(t, err)
	assert.Contains(t, out, "Key conflict: 'Print' bound to Browser, Screenshot (Browser wins)")
}

func TestListResolve(t *testing.T) {
	setupHome(t, testActions)
	_, err := run(t, "set", "Browser", "Print")
	require.NoError(t, err)

	out, err := run(t, "list", "--resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "(Print taken by Browser)")
}

func TestInvalidActionsFile(t *testing.T) {
	setupHome(t, "[[action]]\nname = \"Bad\"\ndefault = \"Hyper+B\"\n")

	_, err := run(t, "list")
	assert.Error(t, err)
}

func TestStatusWithoutDaemon(t *testing.T) {
	setupHome(t, testActions)

	out, err := run(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "daemon not running")
}

func TestDaemonNeedsBackend(t *testing.T) {
	setupHome(t, testActions)

	_, err := run(t, "daemon")
	assert.Error(t, err)
}

func TestBlockAndUnblock(t *testing.T) {
	dir := setupHome(t, testActions)

	out, err := run(t, "block")
	require.NoError(t, err)
	assert.Contains(t, out, "shortcuts blocked")
	assert.FileExists(t, filepath.Join(dir, config.BlockFileName))

	out, err = run(t, "unblock")
	require.NoError(t, err)
	assert.Contains(t, out, "shortcuts unblocked")
	assert.NoFileExists(t, filepath.Join(dir, config.BlockFileName))
}
