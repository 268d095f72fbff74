package main

import (
	"fmt"

	"github.com/spf13/cobra"

	godotlog "github.com/matula/godot-mcp-server/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
)

// rootCmd is the base command for godot-mcp.
var rootCmd = &cobra.Command{
	Use:   "godot-mcp",
	Short: "Drive the Godot engine from AI agents over MCP",
	Long: `godot-mcp exposes a locally installed Godot engine to AI agents via the
Model Context Protocol. It locates the engine executable, runs it headless
for structured scene operations, scaffolds new projects, and tracks a single
running project for debug output capture.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		godotlog.Setup(verbose, quiet)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(versionCmd)
}

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the process exit code to use.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError.
func exitError(code int, format string, args ...any) *exitCodeError {
	return &exitCodeError{code: code, msg: fmt.Sprintf(format, args...)}
}
