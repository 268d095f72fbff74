// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/matula/godot-mcp-server/internal/config"
	"github.com/matula/godot-mcp-server/internal/mcpserver"
)

// serveCmd runs the MCP server over stdio.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing Godot engine tools:
  - get_godot_version, get_project_info, list_projects
  - launch_editor, run_project, stop_project, get_debug_output
  - create_project, create_scene, add_node, load_sprite, save_scene
  - export_mesh_library, get_uid, update_project_uids

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to drive a local Godot installation directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadDefault()
		if err != nil {
			return err
		}
		return mcpserver.Run(cmd.Context(), Version, cfg, &mcp.StdioTransport{})
	},
}
