// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matula/godot-mcp-server/internal/config"
	"github.com/matula/godot-mcp-server/internal/godot"
	"github.com/matula/godot-mcp-server/internal/session"
	"github.com/matula/godot-mcp-server/internal/testable"
)

const fakeExe = "/fake/godot"

// newTestServer builds a Server whose engine is a MockCommandExecutor and
// whose executable path is pre-resolved.
func newTestServer(t *testing.T, executor *testable.MockCommandExecutor) *Server {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())

	s := NewServer(&config.Config{})
	s.exePath = fakeExe
	s.runner = &godot.Runner{Executor: executor}
	s.session = session.New(executor, 0)
	s.bridge.Runner = s.runner
	return s
}

// resultText extracts the text content from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	return result.Content[0].(*mcp.TextContent).Text
}

func TestHandleVersion(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{
		CommandOutputs: map[string]string{
			fakeExe + " --version": "4.2.1.stable.official.b09f793f5",
		},
	})

	result, _, err := s.handleVersion(context.Background(), nil, VersionInput{})
	require.NoError(t, err)
	text := resultText(t, result)
	assert.Contains(t, text, "4.2.1")
	assert.Contains(t, text, "stable.official")
}

func TestHandleVersion_NoExecutable(t *testing.T) {
	s := NewServer(&config.Config{})
	s.locator = &godot.Locator{
		Getenv:     func(string) string { return "" },
		GOOS:       "linux",
		Candidates: []string{},
		Executor:   &testable.MockCommandExecutor{LookPathErr: os.ErrNotExist},
	}

	_, _, err := s.handleVersion(context.Background(), nil, VersionInput{})
	assert.ErrorIs(t, err, godot.ErrNotFound)
}

func TestResolveExe_CachedAfterFirstCall(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "godot")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // test fixture

	s := NewServer(&config.Config{})
	s.locator = &godot.Locator{
		Getenv:     func(string) string { return "" },
		GOOS:       "linux",
		Candidates: []string{exe},
	}

	first, err := s.resolveExe()
	require.NoError(t, err)
	assert.Equal(t, exe, first)

	// Remove the binary: the cached path must still be served, untouched.
	require.NoError(t, os.Remove(exe))
	second, err := s.resolveExe()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveExe_ConfigPathWins(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "pinned-godot")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o700)) //nolint:gosec // test fixture

	s := NewServer(&config.Config{GodotPath: exe})
	path, err := s.resolveExe()
	require.NoError(t, err)
	assert.Equal(t, exe, path)
}

func TestHandleStopProject_Idle(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{})

	result, _, err := s.handleStopProject(context.Background(), nil, StopProjectInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No project is currently running")
}

func TestHandleDebugOutput_Idle(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{})

	result, _, err := s.handleDebugOutput(context.Background(), nil, DebugOutputInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No project is currently running")
}

func TestHandleRunProject_ThenStopAndPeek(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{DefaultOutput: "game output"})
	proj := initTestProject(t)

	result, _, err := s.handleRunProject(context.Background(), nil, RunProjectInput{ProjectPath: proj})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Project running")

	result, _, err = s.handleStopProject(context.Background(), nil, StopProjectInput{})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Project stopped")
}

func TestHandleRunProject_InvalidProject(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{})

	_, _, err := s.handleRunProject(context.Background(), nil, RunProjectInput{ProjectPath: t.TempDir()})
	assert.ErrorIs(t, err, godot.ErrInvalidProject)
}

func TestHandleLaunchEditor(t *testing.T) {
	executor := &testable.MockCommandExecutor{}
	s := newTestServer(t, executor)
	proj := initTestProject(t)

	result, _, err := s.handleLaunchEditor(context.Background(), nil, LaunchEditorInput{ProjectPath: proj})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "editor launched")

	require.Len(t, executor.Calls, 1)
	assert.Contains(t, executor.Calls[0], "-e")
	assert.Contains(t, executor.Calls[0], proj)
}

func TestHandleCreateScene(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{
		DefaultOutput: `Godot Engine v4.2
{"success":true,"scenePath":"res://main.tscn","rootNodeType":"Node2D"}`,
	})
	proj := initTestProject(t)

	result, _, err := s.handleCreateScene(context.Background(), nil, CreateSceneInput{
		ProjectPath: proj,
		ScenePath:   "res://main.tscn",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "res://main.tscn")
}

func TestHandleCreateScene_RejectsUnknownNodeType(t *testing.T) {
	executor := &testable.MockCommandExecutor{}
	s := newTestServer(t, executor)
	proj := initTestProject(t)

	_, _, err := s.handleCreateScene(context.Background(), nil, CreateSceneInput{
		ProjectPath:  proj,
		ScenePath:    "res://main.tscn",
		RootNodeType: "EvilType;OS.execute()",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported node type")
	assert.Empty(t, executor.Calls, "validation must happen before any subprocess")
}

func TestHandleAddNode_BridgeFailureSurfacesError(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{
		DefaultOutput: `{"success":false,"error":"scene not found: res://missing.tscn"}`,
	})
	proj := initTestProject(t)

	_, _, err := s.handleAddNode(context.Background(), nil, AddNodeInput{
		ProjectPath: proj,
		ScenePath:   "res://missing.tscn",
		NodeType:    "Sprite2D",
		NodeName:    "Player",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scene not found")
}

func TestHandleGetUID_RejectsOldEngine(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{
		CommandOutputs: map[string]string{
			fakeExe + " --version": "4.2.1.stable.official.b09f793f5",
		},
	})
	proj := initTestProject(t)

	_, _, err := s.handleGetUID(context.Background(), nil, GetUIDInput{
		ProjectPath: proj,
		FilePath:    "res://main.tscn",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4.4+")
}

func TestHandleGetUID_SupportedEngine(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{
		CommandOutputs: map[string]string{
			fakeExe + " --version": "4.4.1.stable.official.deadbeef",
		},
		DefaultOutput: `{"success":true,"filePath":"res://main.tscn","uid":"uid://c4f2xkq1n"}`,
	})
	proj := initTestProject(t)

	result, _, err := s.handleGetUID(context.Background(), nil, GetUIDInput{
		ProjectPath: proj,
		FilePath:    "res://main.tscn",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "uid://c4f2xkq1n")
}

func TestHandleCreateProject(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{})
	dir := filepath.Join(t.TempDir(), "newgame")

	result, _, err := s.handleCreateProject(context.Background(), nil, CreateProjectInput{
		ProjectPath: dir,
		Template:    "2d",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Created project")

	_, statErr := os.Stat(filepath.Join(dir, "project.godot"))
	assert.NoError(t, statErr)
}

func TestHandleCreateProject_UnknownTemplate(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{})

	_, _, err := s.handleCreateProject(context.Background(), nil, CreateProjectInput{
		ProjectPath: filepath.Join(t.TempDir(), "x"),
		Template:    "vr",
	})
	assert.Error(t, err)
}

func TestHandleListProjects(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"game-a", "game-b"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "project.godot"), []byte("config_version=5\n"), 0o600))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-project"), 0o750))

	s := newTestServer(t, &testable.MockCommandExecutor{})
	result, _, err := s.handleListProjects(context.Background(), nil, ListProjectsInput{Directory: root})
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "game-a")
	assert.Contains(t, text, "game-b")
	assert.NotContains(t, text, "not-a-project")
}

func TestHandleListProjects_NoDirectory(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{})

	_, _, err := s.handleListProjects(context.Background(), nil, ListProjectsInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory is required")
}

func TestHandleProjectInfo(t *testing.T) {
	s := newTestServer(t, &testable.MockCommandExecutor{
		CommandOutputs: map[string]string{
			fakeExe + " --version": "4.3.stable.official.77dcf97d8",
		},
	})
	proj := initTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(proj, "main.tscn"), []byte("[gd_scene]\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "main.gd"), []byte("extends Node\n"), 0o600))

	result, _, err := s.handleProjectInfo(context.Background(), nil, ProjectInfoInput{ProjectPath: proj})
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"godotVersion": "4.3.0"`)
	assert.Contains(t, text, `"sceneCount": 1`)
	assert.Contains(t, text, `"scriptCount": 1`)
}
