// Package godot locates and runs the Godot engine executable.
//
// The engine is treated as an opaque external tool: this package knows how to
// find the binary across platforms, invoke it with arguments, and capture its
// output. It deliberately knows nothing about scenes, nodes, or any other
// engine concept.
package godot

import (
	"errors"
	"os"
	"runtime"

	"github.com/matula/godot-mcp-server/internal/testable"
)

// EnvPathOverride is the environment variable that, when set to the path of
// an existing file, overrides all other locator strategies.
const EnvPathOverride = "GODOT_PATH"

// ErrNotFound is returned by Locator.Locate when every strategy has been
// exhausted without finding a Godot executable.
var ErrNotFound = errors.New("godot executable not found")

// candidatePaths lists conventional install locations per GOOS.
var candidatePaths = map[string][]string{
	"darwin": {
		"/Applications/Godot.app/Contents/MacOS/Godot",
		"/Applications/Godot_mono.app/Contents/MacOS/Godot",
	},
	"windows": {
		`C:\Program Files\Godot\Godot.exe`,
		`C:\Program Files (x86)\Godot\Godot.exe`,
		`C:\Program Files\Godot_mono\Godot.exe`,
	},
	"linux": {
		"/usr/bin/godot",
		"/usr/local/bin/godot",
		"/snap/bin/godot",
		"/var/lib/flatpak/exports/bin/org.godotengine.Godot",
	},
}

// Locator finds the Godot executable. It performs no caching; callers that
// want a process-lifetime cache (e.g., the MCP server) hold on to the result
// themselves.
type Locator struct {
	// Executor resolves PATH lookups. Defaults to the real os/exec executor.
	Executor testable.CommandExecutor

	// FS checks candidate existence. Defaults to the real file system.
	FS testable.FileSystem

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// GOOS selects the candidate list. Defaults to runtime.GOOS.
	GOOS string

	// Candidates overrides the static candidate list for the selected GOOS.
	// Nil means use the built-in list; an empty non-nil slice means none.
	Candidates []string
}

// NewLocator returns a Locator wired to the real OS.
func NewLocator() *Locator {
	return &Locator{
		Executor: testable.DefaultExecutor(),
		FS:       testable.DefaultFS,
		Getenv:   os.Getenv,
		GOOS:     runtime.GOOS,
	}
}

// Locate resolves the path to the Godot executable. Strategies are tried in
// order and the first hit wins:
//
//  1. The GODOT_PATH environment variable, accepted only when it points at an
//     existing file. A stale override falls through rather than failing.
//  2. Conventional install locations for the current platform.
//  3. A PATH lookup for "godot" on non-Windows platforms.
//
// Returns ErrNotFound when all strategies exhaust.
func (l *Locator) Locate() (string, error) {
	if override := l.getenv(EnvPathOverride); override != "" {
		if l.exists(override) {
			return override, nil
		}
	}

	candidates := l.Candidates
	if candidates == nil {
		candidates = candidatePaths[l.goos()]
	}
	for _, candidate := range candidates {
		if l.exists(candidate) {
			return candidate, nil
		}
	}

	if l.goos() != "windows" {
		if path, err := l.executor().LookPath("godot"); err == nil && l.exists(path) {
			return path, nil
		}
	}

	return "", ErrNotFound
}

func (l *Locator) getenv(key string) string {
	if l.Getenv != nil {
		return l.Getenv(key)
	}
	return os.Getenv(key)
}

func (l *Locator) goos() string {
	if l.GOOS != "" {
		return l.GOOS
	}
	return runtime.GOOS
}

func (l *Locator) executor() testable.CommandExecutor {
	if l.Executor != nil {
		return l.Executor
	}
	return testable.DefaultExecutor()
}

func (l *Locator) fs() testable.FileSystem {
	if l.FS != nil {
		return l.FS
	}
	return testable.DefaultFS
}

func (l *Locator) exists(path string) bool {
	info, err := l.fs().Stat(path)
	return err == nil && !info.IsDir()
}
