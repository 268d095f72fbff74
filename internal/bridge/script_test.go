package bridge

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matula/godot-mcp-server/internal/testable"
)

func TestEnsureScript_WritesOnFirstUse(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	path, err := EnsureScript(testable.DefaultFS)
	require.NoError(t, err)

	content, err := os.ReadFile(path) //nolint:gosec // test-owned temp path
	require.NoError(t, err)
	assert.Contains(t, string(content), "extends SceneTree")
	assert.Contains(t, string(content), "unknown operation")
}

func TestEnsureScript_SecondCallDoesNotRewrite(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	writes := 0
	fs := &testable.MockFileSystem{
		WriteFileFn: func(name string, data []byte, perm os.FileMode) error {
			writes++
			return testable.OsFileSystem{}.WriteFile(name, data, perm)
		},
	}

	first, err := EnsureScript(fs)
	require.NoError(t, err)
	second, err := EnsureScript(fs)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, writes, "script must be materialized exactly once")
}

func TestBridgeScript_DispatchSetIsClosed(t *testing.T) {
	// Every operation the server can issue must have a dispatch arm.
	for _, op := range []string{
		"create_scene", "add_node", "load_sprite", "save_scene",
		"export_mesh_library", "get_uid", "resave_resources",
	} {
		assert.True(t, strings.Contains(bridgeScript, `"`+op+`"`), "missing dispatch for %s", op)
	}
}
