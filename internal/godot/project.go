package godot

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/matula/godot-mcp-server/internal/testable"
)

// ProjectFile is the marker file every Godot project directory carries.
const ProjectFile = "project.godot"

// ErrInvalidProject is returned when a path does not hold a Godot project.
var ErrInvalidProject = errors.New("not a valid godot project")

// ValidateProject confirms that path is a directory containing a
// project.godot marker. It is checked before any subprocess is spawned so a
// bad path never reaches the engine.
func ValidateProject(fs testable.FileSystem, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %q does not exist", ErrInvalidProject, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", ErrInvalidProject, path)
	}
	if _, err := fs.Stat(filepath.Join(path, ProjectFile)); err != nil {
		return fmt.Errorf("%w: %q has no %s", ErrInvalidProject, path, ProjectFile)
	}
	return nil
}
