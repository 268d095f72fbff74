package godot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matula/godot-mcp-server/internal/testable"
)

func TestValidateProject_Valid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte("config_version=5\n"), 0o600))

	assert.NoError(t, ValidateProject(testable.DefaultFS, dir))
}

func TestValidateProject_MissingMarker(t *testing.T) {
	err := ValidateProject(testable.DefaultFS, t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidProject)
}

func TestValidateProject_NonexistentPath(t *testing.T) {
	err := ValidateProject(testable.DefaultFS, "/nonexistent/project")
	assert.ErrorIs(t, err, ErrInvalidProject)
}

func TestValidateProject_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notadir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	err := ValidateProject(testable.DefaultFS, file)
	assert.ErrorIs(t, err, ErrInvalidProject)
}
