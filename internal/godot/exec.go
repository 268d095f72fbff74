package godot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/matula/godot-mcp-server/internal/testable"
)

// CommandResult holds the captured output of a completed Godot invocation.
// A non-zero exit code does NOT produce an error: Godot writes diagnostic
// noise and returns non-zero codes even on partial success, so callers must
// judge success from the output content, not the exit status.
type CommandResult struct {
	Stdout string
	Stderr string
}

// Runner executes the Godot binary and captures its output.
type Runner struct {
	// Executor creates the subprocess. Defaults to the real os/exec executor.
	Executor testable.CommandExecutor

	// Timeout bounds a single invocation. Zero means no timeout: a hung
	// engine blocks that call until cancelled via ctx.
	Timeout time.Duration
}

// NewRunner returns a Runner wired to the real OS with no timeout.
func NewRunner() *Runner {
	return &Runner{Executor: testable.DefaultExecutor()}
}

// Run executes exe with args in cwd and waits for it to finish. It returns an
// error only when the process could not be spawned at all (missing file,
// permission denied); a process that starts and exits non-zero still yields a
// normal CommandResult with whatever stdout/stderr were captured.
func (r *Runner) Run(ctx context.Context, exe string, args []string, cwd string) (*CommandResult, error) {
	if ctx == nil {
		// exec.CommandContext panics on a nil context.
		ctx = context.Background()
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := r.executor().CommandContext(ctx, exe, args...)
	cmd.Dir = cwd
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The process ran and exited non-zero. Absorb it.
			return result, nil
		}
		return nil, fmt.Errorf("spawn %s: %w", exe, err)
	}
	return result, nil
}

// StartDetached spawns exe with args in cwd and returns without waiting. The
// process is not tied to the caller's context: it keeps running after the
// request that launched it completes. No handle is retained; the process is
// reaped by a background goroutine. Used for fire-and-forget launches such as
// opening the editor.
func (r *Runner) StartDetached(_ context.Context, exe string, args []string, cwd string) error {
	cmd := r.executor().CommandContext(context.Background(), exe, args...)
	cmd.Dir = cwd

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", exe, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func (r *Runner) executor() testable.CommandExecutor {
	if r.Executor != nil {
		return r.Executor
	}
	return testable.DefaultExecutor()
}
