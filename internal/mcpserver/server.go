// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes Godot engine operations as tools over stdio transport.
package mcpserver

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matula/godot-mcp-server/internal/bridge"
	"github.com/matula/godot-mcp-server/internal/config"
	"github.com/matula/godot-mcp-server/internal/godot"
	"github.com/matula/godot-mcp-server/internal/session"
	"github.com/matula/godot-mcp-server/internal/testable"
)

// Server holds the shared state behind all tool handlers: the cached engine
// path, the single tracked run, and the injectable OS seams. It replaces
// what would otherwise be package-level globals, so tests construct as many
// independent instances as they like.
type Server struct {
	cfg     *config.Config
	locator *godot.Locator
	runner  *godot.Runner
	bridge  *bridge.Bridge
	session *session.Session
	fs      testable.FileSystem

	// exePath is resolved on first need and then immutable for the process
	// lifetime. Guarded by mu only until set.
	mu      sync.Mutex
	exePath string
}

// NewServer builds a Server from config with real OS implementations.
func NewServer(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = &config.Config{}
	}
	executor := testable.DefaultExecutor()
	s := &Server{
		cfg:     cfg,
		locator: godot.NewLocator(),
		runner:  &godot.Runner{Executor: executor, Timeout: cfg.Timeout()},
		session: session.New(executor, cfg.DebugBufferLimit),
		fs:      testable.DefaultFS,
	}
	s.bridge = &bridge.Bridge{
		ResolveExe: s.resolveExe,
		Runner:     s.runner,
		FS:         s.fs,
	}
	return s
}

// resolveExe returns the engine path, resolving it on first call and caching
// for the process lifetime. The config's godot_path is honoured before the
// locator's own strategies; GODOT_PATH still wins inside the locator.
func (s *Server) resolveExe() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.exePath != "" {
		return s.exePath, nil
	}

	if s.cfg.GodotPath != "" {
		if info, err := s.fs.Stat(s.cfg.GodotPath); err == nil && !info.IsDir() {
			s.exePath = s.cfg.GodotPath
			return s.exePath, nil
		}
	}

	path, err := s.locator.Locate()
	if err != nil {
		return "", err
	}
	s.exePath = path
	return s.exePath, nil
}

// New creates an MCP server with all Godot tools registered.
func New(version string, cfg *config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "godot-mcp",
		Title:   "Godot MCP Server",
		Version: version,
	}, nil)

	registerTools(server, NewServer(cfg))
	return server
}

// Run creates an MCP server and runs it on the given transport. It blocks
// until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, cfg *config.Config, transport mcp.Transport) error {
	server := New(version, cfg)
	return server.Run(ctx, transport)
}
