// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matula/godot-mcp-server/internal/bridge"
	"github.com/matula/godot-mcp-server/internal/godot"
	"github.com/matula/godot-mcp-server/internal/scaffold"
	"github.com/matula/godot-mcp-server/internal/testable"
)

// VersionInput is the input schema for the get_godot_version tool.
type VersionInput struct{}

// LaunchEditorInput is the input schema for the launch_editor tool.
type LaunchEditorInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
}

// RunProjectInput is the input schema for the run_project tool.
type RunProjectInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
	Scene       string `json:"scene,omitempty" jsonschema:"Scene to run instead of the project's main scene (res:// path)"`
}

// StopProjectInput is the input schema for the stop_project tool.
type StopProjectInput struct{}

// DebugOutputInput is the input schema for the get_debug_output tool.
type DebugOutputInput struct{}

// ProjectInfoInput is the input schema for the get_project_info tool.
type ProjectInfoInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
}

// ListProjectsInput is the input schema for the list_projects tool.
type ListProjectsInput struct {
	Directory string `json:"directory,omitempty" jsonschema:"Directory to scan for Godot projects (defaults to projects_dir from config)"`
}

// CreateProjectInput is the input schema for the create_project tool.
type CreateProjectInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Directory to create the project in"`
	ProjectName string `json:"project_name,omitempty" jsonschema:"Project name (defaults to the directory name)"`
	Template    string `json:"template,omitempty" jsonschema:"Project template: empty, 2d, or 3d (default: empty)"`
	GitInit     bool   `json:"git_init,omitempty" jsonschema:"Initialize a git repository with an initial commit"`
}

// CreateSceneInput is the input schema for the create_scene tool.
type CreateSceneInput struct {
	ProjectPath  string `json:"project_path" jsonschema:"Path to the Godot project directory"`
	ScenePath    string `json:"scene_path" jsonschema:"Scene file to create (res:// path)"`
	RootNodeType string `json:"root_node_type,omitempty" jsonschema:"Node class for the scene root (default: Node2D)"`
}

// AddNodeInput is the input schema for the add_node tool.
type AddNodeInput struct {
	ProjectPath    string         `json:"project_path" jsonschema:"Path to the Godot project directory"`
	ScenePath      string         `json:"scene_path" jsonschema:"Scene file to modify (res:// path)"`
	NodeType       string         `json:"node_type" jsonschema:"Node class to instantiate"`
	NodeName       string         `json:"node_name" jsonschema:"Name for the new node"`
	ParentNodePath string         `json:"parent_node_path,omitempty" jsonschema:"Path to the parent node (defaults to the scene root)"`
	Properties     map[string]any `json:"properties,omitempty" jsonschema:"Property values to set on the new node"`
}

// LoadSpriteInput is the input schema for the load_sprite tool.
type LoadSpriteInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
	ScenePath   string `json:"scene_path" jsonschema:"Scene file to modify (res:// path)"`
	NodePath    string `json:"node_path" jsonschema:"Path to the sprite node within the scene"`
	TexturePath string `json:"texture_path" jsonschema:"Texture resource to load (res:// path)"`
}

// SaveSceneInput is the input schema for the save_scene tool.
type SaveSceneInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
	ScenePath   string `json:"scene_path" jsonschema:"Scene file to save (res:// path)"`
	NewPath     string `json:"new_path,omitempty" jsonschema:"Save to this path instead (saves a copy)"`
}

// ExportMeshLibraryInput is the input schema for the export_mesh_library tool.
type ExportMeshLibraryInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
	ScenePath   string `json:"scene_path" jsonschema:"Scene holding MeshInstance3D children (res:// path)"`
	OutputPath  string `json:"output_path" jsonschema:"MeshLibrary resource to write (res:// path)"`
}

// GetUIDInput is the input schema for the get_uid tool.
type GetUIDInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
	FilePath    string `json:"file_path" jsonschema:"Resource file to query (res:// path)"`
}

// UpdateUIDsInput is the input schema for the update_project_uids tool.
type UpdateUIDsInput struct {
	ProjectPath string `json:"project_path" jsonschema:"Path to the Godot project directory"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all Godot tools to the MCP server.
func registerTools(server *mcp.Server, s *Server) {
	readOnly := &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
	mutating := &mcp.ToolAnnotations{
		ReadOnlyHint:    false,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_godot_version",
		Description: "Get the version of the installed Godot engine.",
		Annotations: readOnly,
	}, s.handleVersion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "launch_editor",
		Description: "Open the Godot editor for a project. The editor runs detached; no handle is kept.",
		Annotations: mutating,
	}, s.handleLaunchEditor)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_project",
		Description: "Run a Godot project in debug mode. Stops any previously running project first.",
		Annotations: mutating,
	}, s.handleRunProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "stop_project",
		Description: "Stop the currently running Godot project, if any.",
		Annotations: mutating,
	}, s.handleStopProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_debug_output",
		Description: "Get the console output captured so far from the running Godot project.",
		Annotations: readOnly,
	}, s.handleDebugOutput)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_project_info",
		Description: "Get metadata about a Godot project: engine version, scene and script counts.",
		Annotations: readOnly,
	}, s.handleProjectInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List Godot projects (directories containing project.godot) under a directory.",
		Annotations: readOnly,
	}, s.handleListProjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a new Godot project from a template (empty, 2d, or 3d), optionally with a git repository.",
		Annotations: mutating,
	}, s.handleCreateProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_scene",
		Description: "Create a new scene file in a Godot project with the given root node type.",
		Annotations: mutating,
	}, s.handleCreateScene)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_node",
		Description: "Add a node to an existing scene. Supported node types: " + strings.Join(bridge.NodeTypeNames(), ", ") + ".",
		Annotations: mutating,
	}, s.handleAddNode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_sprite",
		Description: "Assign a texture to a sprite node in a scene.",
		Annotations: mutating,
	}, s.handleLoadSprite)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_scene",
		Description: "Save a scene, optionally to a new path (saving a copy).",
		Annotations: mutating,
	}, s.handleSaveScene)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_mesh_library",
		Description: "Export the MeshInstance3D children of a scene as a MeshLibrary resource for GridMap use.",
		Annotations: mutating,
	}, s.handleExportMeshLibrary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_uid",
		Description: "Get the resource UID of a file in a Godot project (requires Godot 4.4+).",
		Annotations: readOnly,
	}, s.handleGetUID)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_project_uids",
		Description: "Resave project resources to regenerate UID references (requires Godot 4.4+).",
		Annotations: mutating,
	}, s.handleUpdateUIDs)
}

// textResult wraps text as a successful tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// payloadResult renders a bridge payload as indented JSON.
func payloadResult(payload map[string]any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return textResult(fmt.Sprintf("%v", payload))
	}
	return textResult(string(data))
}

// runOperation validates the project, executes one bridge operation, and
// maps a success:false payload to an error.
func (s *Server) runOperation(ctx context.Context, projectPath, operation string, params map[string]any) (*mcp.CallToolResult, any, error) {
	proj, err := ResolveProject(s.fs, projectPath)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.bridge.Execute(ctx, proj, operation, params)
	if err != nil {
		return nil, nil, err
	}

	if ok, _ := result["success"].(bool); !ok {
		msg, _ := result["error"].(string)
		if msg == "" {
			msg = "no error message in result"
		}
		return nil, nil, fmt.Errorf("%s failed: %s", operation, msg)
	}

	return payloadResult(result), nil, nil
}

// version runs `godot --version` and returns the raw output plus the
// normalized semver form.
func (s *Server) version(ctx context.Context) (raw, normalized string, err error) {
	exe, err := s.resolveExe()
	if err != nil {
		return "", "", err
	}
	result, err := s.runner.Run(ctx, exe, []string{"--version"}, "")
	if err != nil {
		return "", "", err
	}
	normalized, err = godot.ParseVersion(result.Stdout)
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(result.Stdout), normalized, nil
}

func (s *Server) handleVersion(ctx context.Context, _ *mcp.CallToolRequest, _ VersionInput) (*mcp.CallToolResult, any, error) {
	raw, normalized, err := s.version(ctx)
	if err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("Godot %s (%s)", strings.TrimPrefix(normalized, "v"), raw)), nil, nil
}

func (s *Server) handleLaunchEditor(ctx context.Context, _ *mcp.CallToolRequest, input LaunchEditorInput) (*mcp.CallToolResult, any, error) {
	proj, err := ResolveProject(s.fs, input.ProjectPath)
	if err != nil {
		return nil, nil, err
	}
	exe, err := s.resolveExe()
	if err != nil {
		return nil, nil, err
	}
	if err := s.runner.StartDetached(ctx, exe, []string{"-e", "--path", proj}, proj); err != nil {
		return nil, nil, err
	}
	return textResult(fmt.Sprintf("Godot editor launched for %s", proj)), nil, nil
}

func (s *Server) handleRunProject(ctx context.Context, _ *mcp.CallToolRequest, input RunProjectInput) (*mcp.CallToolResult, any, error) {
	proj, err := ResolveProject(s.fs, input.ProjectPath)
	if err != nil {
		return nil, nil, err
	}
	exe, err := s.resolveExe()
	if err != nil {
		return nil, nil, err
	}

	args := []string{"-d", "--path", proj}
	if input.Scene != "" {
		args = append(args, input.Scene)
	}

	wasRunning := s.session.Running()
	if err := s.session.Start(ctx, exe, args, proj); err != nil {
		return nil, nil, err
	}

	msg := fmt.Sprintf("Project running: %s", proj)
	if wasRunning {
		msg = "Previous run stopped. " + msg
	}
	return textResult(msg), nil, nil
}

func (s *Server) handleStopProject(_ context.Context, _ *mcp.CallToolRequest, _ StopProjectInput) (*mcp.CallToolResult, any, error) {
	stopped, err := s.session.Stop()
	if err != nil {
		return nil, nil, err
	}
	if !stopped {
		return textResult("No project is currently running."), nil, nil
	}
	return textResult("Project stopped."), nil, nil
}

func (s *Server) handleDebugOutput(_ context.Context, _ *mcp.CallToolRequest, _ DebugOutputInput) (*mcp.CallToolResult, any, error) {
	output, running := s.session.Peek()
	if !running {
		return textResult("No project is currently running."), nil, nil
	}
	if output == "" {
		return textResult("No output captured yet."), nil, nil
	}
	return textResult(output), nil, nil
}

func (s *Server) handleProjectInfo(ctx context.Context, _ *mcp.CallToolRequest, input ProjectInfoInput) (*mcp.CallToolResult, any, error) {
	proj, err := ResolveProject(s.fs, input.ProjectPath)
	if err != nil {
		return nil, nil, err
	}

	_, version, err := s.version(ctx)
	if err != nil {
		return nil, nil, err
	}

	scenes, scripts, err := countProjectFiles(s.fs, proj)
	if err != nil {
		return nil, nil, err
	}

	return payloadResult(map[string]any{
		"projectPath":  proj,
		"projectName":  filepath.Base(proj),
		"godotVersion": strings.TrimPrefix(version, "v"),
		"sceneCount":   scenes,
		"scriptCount":  scripts,
	}), nil, nil
}

func (s *Server) handleListProjects(_ context.Context, _ *mcp.CallToolRequest, input ListProjectsInput) (*mcp.CallToolResult, any, error) {
	dir := input.Directory
	if dir == "" {
		dir = s.cfg.ProjectsDir
	}
	if dir == "" {
		return nil, nil, fmt.Errorf("directory is required (no projects_dir configured)")
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read directory %q: %w", dir, err)
	}

	var projects []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(dir, entry.Name())
		if _, err := s.fs.Stat(filepath.Join(candidate, godot.ProjectFile)); err == nil {
			projects = append(projects, candidate)
		}
	}
	sort.Strings(projects)

	if len(projects) == 0 {
		return textResult(fmt.Sprintf("No Godot projects found under %s", dir)), nil, nil
	}
	return textResult(strings.Join(projects, "\n")), nil, nil
}

func (s *Server) handleCreateProject(_ context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectPath == "" {
		return nil, nil, fmt.Errorf("project_path is required")
	}
	if input.Template != "" && !scaffold.ValidTemplate(input.Template) {
		return nil, nil, fmt.Errorf("unknown template %q", input.Template)
	}

	scaffolder := scaffold.New()
	scaffolder.FS = s.fs
	result, err := scaffolder.Create(scaffold.Options{
		Path:     input.ProjectPath,
		Name:     input.ProjectName,
		Template: scaffold.Template(input.Template),
		GitInit:  input.GitInit,
	})
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Created project at %s\n", result.Path)
	for _, a := range result.Actions {
		fmt.Fprintf(&b, "  + %-16s %s\n", a.File, a.Description)
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleCreateScene(ctx context.Context, _ *mcp.CallToolRequest, input CreateSceneInput) (*mcp.CallToolResult, any, error) {
	if input.ScenePath == "" {
		return nil, nil, fmt.Errorf("scene_path is required")
	}
	rootType := input.RootNodeType
	if rootType == "" {
		rootType = "Node2D"
	}
	if !bridge.ValidNodeType(rootType) {
		return nil, nil, fmt.Errorf("unsupported node type %q", rootType)
	}
	return s.runOperation(ctx, input.ProjectPath, "create_scene", map[string]any{
		"scenePath":    input.ScenePath,
		"rootNodeType": rootType,
	})
}

func (s *Server) handleAddNode(ctx context.Context, _ *mcp.CallToolRequest, input AddNodeInput) (*mcp.CallToolResult, any, error) {
	if input.ScenePath == "" || input.NodeType == "" || input.NodeName == "" {
		return nil, nil, fmt.Errorf("scene_path, node_type, and node_name are required")
	}
	if !bridge.ValidNodeType(input.NodeType) {
		return nil, nil, fmt.Errorf("unsupported node type %q", input.NodeType)
	}
	params := map[string]any{
		"scenePath": input.ScenePath,
		"nodeType":  input.NodeType,
		"nodeName":  input.NodeName,
	}
	if input.ParentNodePath != "" {
		params["parentNodePath"] = input.ParentNodePath
	}
	if len(input.Properties) > 0 {
		params["properties"] = input.Properties
	}
	return s.runOperation(ctx, input.ProjectPath, "add_node", params)
}

func (s *Server) handleLoadSprite(ctx context.Context, _ *mcp.CallToolRequest, input LoadSpriteInput) (*mcp.CallToolResult, any, error) {
	if input.ScenePath == "" || input.NodePath == "" || input.TexturePath == "" {
		return nil, nil, fmt.Errorf("scene_path, node_path, and texture_path are required")
	}
	return s.runOperation(ctx, input.ProjectPath, "load_sprite", map[string]any{
		"scenePath":   input.ScenePath,
		"nodePath":    input.NodePath,
		"texturePath": input.TexturePath,
	})
}

func (s *Server) handleSaveScene(ctx context.Context, _ *mcp.CallToolRequest, input SaveSceneInput) (*mcp.CallToolResult, any, error) {
	if input.ScenePath == "" {
		return nil, nil, fmt.Errorf("scene_path is required")
	}
	params := map[string]any{"scenePath": input.ScenePath}
	if input.NewPath != "" {
		params["newPath"] = input.NewPath
	}
	return s.runOperation(ctx, input.ProjectPath, "save_scene", params)
}

func (s *Server) handleExportMeshLibrary(ctx context.Context, _ *mcp.CallToolRequest, input ExportMeshLibraryInput) (*mcp.CallToolResult, any, error) {
	if input.ScenePath == "" || input.OutputPath == "" {
		return nil, nil, fmt.Errorf("scene_path and output_path are required")
	}
	return s.runOperation(ctx, input.ProjectPath, "export_mesh_library", map[string]any{
		"scenePath":  input.ScenePath,
		"outputPath": input.OutputPath,
	})
}

func (s *Server) handleGetUID(ctx context.Context, _ *mcp.CallToolRequest, input GetUIDInput) (*mcp.CallToolResult, any, error) {
	if input.FilePath == "" {
		return nil, nil, fmt.Errorf("file_path is required")
	}
	if err := s.requireUIDSupport(ctx); err != nil {
		return nil, nil, err
	}
	return s.runOperation(ctx, input.ProjectPath, "get_uid", map[string]any{
		"filePath": input.FilePath,
	})
}

func (s *Server) handleUpdateUIDs(ctx context.Context, _ *mcp.CallToolRequest, input UpdateUIDsInput) (*mcp.CallToolResult, any, error) {
	if err := s.requireUIDSupport(ctx); err != nil {
		return nil, nil, err
	}
	return s.runOperation(ctx, input.ProjectPath, "resave_resources", nil)
}

// requireUIDSupport rejects UID operations on engines older than 4.4.
func (s *Server) requireUIDSupport(ctx context.Context) error {
	_, version, err := s.version(ctx)
	if err != nil {
		return err
	}
	if !godot.SupportsUIDs(version) {
		return fmt.Errorf("UID operations need Godot 4.4+, found %s", strings.TrimPrefix(version, "v"))
	}
	return nil
}

// countProjectFiles walks the project tree and counts scene and script
// files, skipping Godot's .godot cache directory.
func countProjectFiles(filesystem testable.FileSystem, root string) (scenes, scripts int, err error) {
	err = filesystem.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == ".godot" || d.Name() == ".git" {
				return fs.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".tscn":
			scenes++
		case ".gd":
			scripts++
		}
		return nil
	})
	return scenes, scripts, err
}
