// Package config handles .godot-mcp.yaml configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the expected config file name.
const FileName = ".godot-mcp.yaml"

// Config represents the contents of a .godot-mcp.yaml file. All fields are
// optional; the GODOT_PATH environment variable takes precedence over
// GodotPath.
type Config struct {
	// GodotPath pins the engine executable instead of using the locator's
	// search strategies.
	GodotPath string `yaml:"godot_path,omitempty"`

	// RunTimeout bounds a single one-shot engine invocation (e.g. a bridge
	// operation), in Go duration syntax ("30s", "2m"). Empty means no
	// timeout.
	RunTimeout string `yaml:"run_timeout,omitempty"`

	// DebugBufferLimit caps the debug output buffer in bytes. Zero means the
	// built-in default.
	DebugBufferLimit int `yaml:"debug_buffer_limit,omitempty"`

	// ProjectsDir is the default directory scanned by list_projects when a
	// tool call provides none.
	ProjectsDir string `yaml:"projects_dir,omitempty"`

	// runTimeout holds the parsed RunTimeout, set by Validate.
	runTimeout time.Duration
}

// Load reads the config file at dir/.godot-mcp.yaml. A missing file yields a
// zero-value Config and nil error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault looks for a config file in the working directory, then in the
// user's home directory. The first file that exists wins, even when it holds
// only default values; none found yields a zero-value Config.
func LoadDefault() (*Config, error) {
	if cwd, err := os.Getwd(); err == nil {
		if _, err := os.Stat(filepath.Join(cwd, FileName)); err == nil {
			return Load(cwd)
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return Load(home)
	}
	return &Config{}, nil
}

// Validate checks field values and parses RunTimeout.
func (c *Config) Validate() error {
	if c.RunTimeout != "" {
		d, err := time.ParseDuration(c.RunTimeout)
		if err != nil {
			return fmt.Errorf("invalid run_timeout %q: %w", c.RunTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("run_timeout must not be negative, got %s", c.RunTimeout)
		}
		c.runTimeout = d
	}
	if c.DebugBufferLimit < 0 {
		return fmt.Errorf("debug_buffer_limit must not be negative, got %d", c.DebugBufferLimit)
	}
	return nil
}

// Timeout returns the parsed run timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	return c.runTimeout
}
