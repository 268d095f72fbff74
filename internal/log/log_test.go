package log

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup_DefaultLevel(t *testing.T) {
	Setup(false, false)

	ctx := context.Background()
	handler := slog.Default().Handler()
	assert.True(t, handler.Enabled(ctx, slog.LevelInfo))
	assert.True(t, handler.Enabled(ctx, slog.LevelWarn))
	assert.False(t, handler.Enabled(ctx, slog.LevelDebug))
}

func TestSetup_VerboseLevel(t *testing.T) {
	Setup(true, false)

	handler := slog.Default().Handler()
	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetup_QuietLevel(t *testing.T) {
	Setup(false, true)

	ctx := context.Background()
	handler := slog.Default().Handler()
	assert.False(t, handler.Enabled(ctx, slog.LevelInfo))
	assert.True(t, handler.Enabled(ctx, slog.LevelWarn))
}

func TestSetup_QuietTakesPrecedence(t *testing.T) {
	// When both flags are set, quiet wins because the switch checks it first.
	Setup(true, true)

	handler := slog.Default().Handler()
	assert.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
}
