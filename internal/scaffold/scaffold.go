// Package scaffold creates new Godot project directories from built-in
// templates.
package scaffold

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/matula/godot-mcp-server/internal/godot"
	"github.com/matula/godot-mcp-server/internal/testable"
)

// Template selects the starter content for a new project. The set is closed:
// anything outside it is rejected before any file is written.
type Template string

// Supported templates.
const (
	TemplateEmpty Template = "empty"
	Template2D    Template = "2d"
	Template3D    Template = "3d"
)

// Options configures Create.
type Options struct {
	// Path is the directory to create the project in. It must not already
	// contain a project.
	Path string

	// Name is the project name written into project.godot. Defaults to the
	// base name of Path.
	Name string

	// Template picks the starter content. Defaults to TemplateEmpty.
	Template Template

	// GitInit initializes a git repository with an initial commit.
	GitInit bool
}

// Action records one file the scaffolder produced.
type Action struct {
	File        string
	Description string
}

// Result summarizes what Create did.
type Result struct {
	Path    string
	Actions []Action
}

// Scaffolder writes project templates. FS and Git default to real
// implementations.
type Scaffolder struct {
	FS  testable.FileSystem
	Git Initializer
}

// New returns a Scaffolder wired to the real OS.
func New() *Scaffolder {
	return &Scaffolder{FS: testable.DefaultFS, Git: RealInitializer{}}
}

// Create writes a new project at opts.Path. It refuses to scaffold into a
// directory that already holds a project.godot.
func (s *Scaffolder) Create(opts Options) (*Result, error) {
	tmpl := opts.Template
	if tmpl == "" {
		tmpl = TemplateEmpty
	}
	if _, ok := templates[tmpl]; !ok {
		return nil, fmt.Errorf("unknown template %q (supported: %s)", tmpl, templateNames())
	}

	path, err := s.FS.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %q: %w", opts.Path, err)
	}

	if _, err := s.FS.Stat(filepath.Join(path, godot.ProjectFile)); err == nil {
		return nil, fmt.Errorf("%q already contains a godot project", path)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(path)
	}

	if err := s.FS.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}

	result := &Result{Path: path}
	for _, f := range templates[tmpl] {
		content := f.render(name)
		if err := s.FS.WriteFile(filepath.Join(path, f.name), []byte(content), 0o600); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
		result.Actions = append(result.Actions, Action{File: f.name, Description: f.description})
	}

	if opts.GitInit {
		if err := s.git().InitWithCommit(path, "Initial commit"); err != nil {
			return nil, fmt.Errorf("git init: %w", err)
		}
		result.Actions = append(result.Actions, Action{File: ".git", Description: "git repository"})
	}

	return result, nil
}

func (s *Scaffolder) git() Initializer {
	if s.Git != nil {
		return s.Git
	}
	return RealInitializer{}
}

// ValidTemplate reports whether name is a supported template kind.
func ValidTemplate(name string) bool {
	_, ok := templates[Template(name)]
	return ok
}

// templateNames returns the supported template kinds, sorted, for error
// messages.
func templateNames() string {
	names := make([]string, 0, len(templates))
	for t := range templates {
		names = append(names, string(t))
	}
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
