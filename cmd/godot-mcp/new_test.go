package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runNewCmd invokes runNew with captured output and restored flag state.
func runNewCmd(t *testing.T, path, template string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		newName = ""
		newTemplate = "empty"
		newGitInit = false
	})
	newTemplate = template

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runNew(cmd, []string{path})
	return buf.String(), err
}

func TestRunNew_CreatesProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")

	out, err := runNewCmd(t, dir, "2d")
	require.NoError(t, err)
	assert.Contains(t, out, "created project")
	assert.Contains(t, out, "project.godot")

	_, statErr := os.Stat(filepath.Join(dir, "main.tscn"))
	assert.NoError(t, statErr)
}

func TestRunNew_UnknownTemplate(t *testing.T) {
	_, err := runNewCmd(t, filepath.Join(t.TempDir(), "demo"), "vr")
	require.Error(t, err)

	var ece *exitCodeError
	require.ErrorAs(t, err, &ece)
	assert.Equal(t, ExitInvalidArgs, ece.ExitCode())
}

func TestRunNew_ExistingProjectFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "project.godot"), []byte("config_version=5\n"), 0o600))

	_, err := runNewCmd(t, dir, "empty")
	assert.Error(t, err)
}
