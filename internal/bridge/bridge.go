// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

// Package bridge executes structured operations inside a Godot project by
// generating a GDScript program once per process lifetime, serializing each
// operation request to a temp file, and running the engine headless over it.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matula/godot-mcp-server/internal/godot"
	"github.com/matula/godot-mcp-server/internal/testable"
)

// Bridge runs named operations against a Godot project via the generated
// bridge script.
type Bridge struct {
	// ResolveExe returns the path to the Godot executable. Called on every
	// Execute so the caller decides the caching policy. The MCP server
	// supplies its process-lifetime cached path here.
	ResolveExe func() (string, error)

	// Runner invokes the engine.
	Runner *godot.Runner

	// FS handles script materialization, request files, and cleanup.
	FS testable.FileSystem
}

// New returns a Bridge wired to the real OS.
func New(resolveExe func() (string, error)) *Bridge {
	return &Bridge{
		ResolveExe: resolveExe,
		Runner:     godot.NewRunner(),
		FS:         testable.DefaultFS,
	}
}

// Execute performs a named operation in projectPath and returns the parsed
// JSON result the bridge script printed. The request file is deleted after
// the run no matter how it went; a failed delete is logged, not surfaced.
//
// The fixed fields "operation" and "projectPath" are applied after params,
// so a params entry with either name cannot override them.
func (b *Bridge) Execute(ctx context.Context, projectPath, operation string, params map[string]any) (map[string]any, error) {
	exe, err := b.ResolveExe()
	if err != nil {
		return nil, err
	}

	scriptPath, err := EnsureScript(b.FS)
	if err != nil {
		return nil, err
	}

	request := make(map[string]any, len(params)+2)
	for k, v := range params {
		request[k] = v
	}
	request["operation"] = operation
	request["projectPath"] = projectPath

	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	requestPath := filepath.Join(os.TempDir(), fmt.Sprintf("godot_mcp_req_%s.json", uuid.NewString()))
	if err := b.FS.WriteFile(requestPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("write request file: %w", err)
	}
	defer func() {
		if err := b.FS.Remove(requestPath); err != nil {
			slog.Warn("failed to remove request file", "path", requestPath, "error", err)
		}
	}()

	args := []string{"--headless", "--script", scriptPath, requestPath}
	result, err := b.Runner.Run(ctx, exe, args, projectPath)
	if err != nil {
		return nil, err
	}

	if result.Stderr != "" {
		// Engine noise, not a failure signal, but worth surfacing.
		slog.Warn("godot stderr during operation", "operation", operation, "stderr", result.Stderr)
	}

	return Extract(result.Stdout)
}
