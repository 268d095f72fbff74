package godot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CapturesBothStreams(t *testing.T) {
	r := NewRunner()

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"}, "")
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	r := NewRunner()

	result, err := r.Run(context.Background(), "sh", []string{"-c", "echo partial; exit 3"}, "")
	require.NoError(t, err)
	assert.Equal(t, "partial\n", result.Stdout)
}

func TestRun_SpawnFailure(t *testing.T) {
	r := NewRunner()

	_, err := r.Run(context.Background(), "/nonexistent/binary", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawn")
}

func TestRun_HonorsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner()

	result, err := r.Run(context.Background(), "pwd", nil, dir)
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestRun_Timeout(t *testing.T) {
	r := &Runner{Timeout: 50 * time.Millisecond}

	// The killed process exits non-zero, which Run absorbs into a result.
	result, err := r.Run(context.Background(), "sh", []string{"-c", "sleep 5"}, "")
	require.NoError(t, err)
	assert.Empty(t, result.Stdout)
}

func TestRun_NilContext(t *testing.T) {
	r := NewRunner()

	// A nil context must be defaulted, not handed to exec.CommandContext.
	result, err := r.Run(nil, "sh", []string{"-c", "echo ok"}, "") //nolint:staticcheck // nil ctx is the case under test
	require.NoError(t, err)
	assert.Equal(t, "ok\n", result.Stdout)
}

func TestStartDetached_ReturnsImmediately(t *testing.T) {
	r := NewRunner()

	start := time.Now()
	err := r.StartDetached(context.Background(), "sh", []string{"-c", "sleep 0.5"}, "")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestStartDetached_SpawnFailure(t *testing.T) {
	r := NewRunner()

	err := r.StartDetached(context.Background(), "/nonexistent/binary", nil, "")
	assert.Error(t, err)
}
