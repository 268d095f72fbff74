package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matula/godot-mcp-server/internal/scaffold"
)

// New-specific flag values.
var (
	newName     string
	newTemplate string
	newGitInit  bool
)

// newCmd scaffolds a Godot project from the CLI.
var newCmd = &cobra.Command{
	Use:   "new <path>",
	Short: "Create a new Godot project",
	Long: `Create a new Godot project directory from a built-in template.

Templates:
  empty  project.godot and icon only
  2d     starter Node2D scene with an attached script
  3d     starter Node3D scene with camera and light`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "project name (defaults to the directory name)")
	newCmd.Flags().StringVar(&newTemplate, "template", "empty", "project template: empty, 2d, or 3d")
	newCmd.Flags().BoolVar(&newGitInit, "git", false, "initialize a git repository with an initial commit")
}

func runNew(cmd *cobra.Command, args []string) error {
	if !scaffold.ValidTemplate(newTemplate) {
		return exitError(ExitInvalidArgs, "godot-mcp: unknown template %q", newTemplate)
	}

	slog.Info("creating project", "path", args[0], "template", newTemplate)

	result, err := scaffold.New().Create(scaffold.Options{
		Path:     args[0],
		Name:     newName,
		Template: scaffold.Template(newTemplate),
		GitInit:  newGitInit,
	})
	if err != nil {
		return exitError(ExitInvalidArgs, "godot-mcp: %v", err)
	}

	// Print summary to cobra's stdout so tests can capture it.
	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintf(w, "created project at %s\n", result.Path)
	_, _ = fmt.Fprintln(w)
	for _, a := range result.Actions {
		_, _ = fmt.Fprintf(w, "%s%-16s %s\n", green.Sprint("  + "), a.File, dim.Sprintf("(%s)", a.Description))
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Open it with: godot-mcp doctor && godot -e --path", result.Path)
	return nil
}
