package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/matula/godot-mcp-server/internal/config"
	"github.com/matula/godot-mcp-server/internal/godot"
)

// doctorCmd diagnoses the local Godot installation.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a Godot executable can be found and run",
	Long: `Diagnose the local Godot setup: resolve the executable through the
GODOT_PATH override, conventional install locations, and PATH lookup, then
run it to report its version. Useful before wiring godot-mcp into an agent.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	_, _ = bold.Fprintln(w, "godot-mcp doctor")
	_, _ = fmt.Fprintln(w)

	cfg, err := config.LoadDefault()
	if err != nil {
		return exitError(ExitInvalidArgs, "config: %v", err)
	}
	if cfg.GodotPath != "" {
		_, _ = fmt.Fprintf(w, "  config godot_path: %s\n", cfg.GodotPath)
	}

	locator := godot.NewLocator()
	path, err := locator.Locate()
	if err != nil {
		_, _ = red.Fprintln(w, "  x no Godot executable found")
		_, _ = dim.Fprintln(w, "    set GODOT_PATH or install Godot in a conventional location")
		return exitError(ExitNoGodot, "")
	}
	_, _ = green.Fprintf(w, "  + executable: %s\n", path)

	runner := godot.NewRunner()
	result, err := runner.Run(cmd.Context(), path, []string{"--version"}, "")
	if err != nil {
		_, _ = red.Fprintf(w, "  x cannot run %s: %v\n", path, err)
		return exitError(ExitNoGodot, "")
	}

	version, err := godot.ParseVersion(result.Stdout)
	if err != nil {
		_, _ = red.Fprintf(w, "  x unrecognized --version output: %v\n", err)
		return exitError(ExitNoGodot, "")
	}
	_, _ = green.Fprintf(w, "  + version: %s\n", version)

	if godot.SupportsUIDs(version) {
		_, _ = dim.Fprintln(w, "    UID operations available (4.4+)")
	} else {
		_, _ = dim.Fprintln(w, "    UID operations unavailable (needs 4.4+)")
	}
	return nil
}
