// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"fmt"

	"github.com/matula/godot-mcp-server/internal/godot"
	"github.com/matula/godot-mcp-server/internal/testable"
)

// ResolveProject resolves a tool-supplied project path to an absolute,
// symlink-free directory and confirms it holds a Godot project. Every tool
// that touches a project goes through here before any subprocess is spawned.
func ResolveProject(fs testable.FileSystem, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("project_path is required")
	}

	absPath, err := fs.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = fs.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	if err := godot.ValidateProject(fs, absPath); err != nil {
		return "", err
	}
	return absPath, nil
}
