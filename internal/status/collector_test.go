package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/hdrcomp/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's global config and auth store out of the test
func isolate(t *testing.T) (dir, authPath string) {
	t.Helper()
	tmpDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	return tmpDir, filepath.Join(tmpDir, "data", "authorized.json")
}

func TestCollect_EmptyDirectory(t *testing.T) {
	dir, authPath := isolate(t)

	data, err := Collect(dir, authPath, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, data.CurrentDir)
	assert.NotEmpty(t, data.Version)
	assert.False(t, data.HasAnyConfig)
	assert.True(t, data.Authorized)
	assert.Empty(t, data.LocalConfigs)
	assert.NotEmpty(t, data.Platform)
	assert.False(t, data.SystemFromConfig)

	// The default user path is the directory itself
	require.Len(t, data.UserPaths, 1)
	assert.Equal(t, dir, data.UserPaths[0].Path)
	assert.True(t, data.UserPaths[0].Exists)

	assert.Contains(t, data.Filters, "c")
	assert.Contains(t, data.Filters, "c++")
}

func TestCollect_WithConfig(t *testing.T) {
	dir, authPath := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "include"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hdrcomp.yml"), []byte(`
user_paths:
  - include
  - missing
  - sh: echo /from/shell
system_paths:
  - /usr/include
platform: linux
mode_filters:
  c:
    glob: "*.h"
`), 0644))

	data, err := Collect(dir, authPath, nil)
	require.NoError(t, err)

	assert.True(t, data.HasAnyConfig)
	assert.False(t, data.Authorized, "shell path is pending")
	require.Len(t, data.ShellPaths, 1)
	assert.False(t, data.ShellPaths[0].Trusted)

	require.Len(t, data.UserPaths, 2)
	assert.Equal(t, PathInfo{Path: filepath.Join(dir, "include"), Exists: true}, data.UserPaths[0])
	assert.Equal(t, PathInfo{Path: filepath.Join(dir, "missing"), Exists: false}, data.UserPaths[1])

	assert.True(t, data.SystemFromConfig)
	require.Len(t, data.SystemPaths, 1)
	assert.Equal(t, "/usr/include", data.SystemPaths[0].Path)
	assert.Equal(t, "linux", data.Platform)
	assert.Equal(t, "glob:*.h", data.Filters["c"])
}

func TestCollect_AuthorizedShellPath(t *testing.T) {
	dir, authPath := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hdrcomp.yml"), []byte("user_paths:\n  - sh: echo /from/shell\n"), 0644))

	authMgr, err := auth.New(authPath)
	require.NoError(t, err)
	require.NoError(t, authMgr.Allow(dir))
	require.NoError(t, authMgr.ApproveCommands(dir, []string{"echo /from/shell"}))

	data, err := Collect(dir, authPath, nil)
	require.NoError(t, err)

	assert.True(t, data.Authorized)
	require.Len(t, data.UserPaths, 1)
	assert.Equal(t, "/from/shell", data.UserPaths[0].Path)
}

func TestCollect_BadFilterIsReported(t *testing.T) {
	dir, authPath := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hdrcomp.yml"), []byte("mode_filters:\n  c: '('\n"), 0644))

	data, err := Collect(dir, authPath, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data.Problems)
}

func TestCollectAll_UsesWorkingDirectory(t *testing.T) {
	dir, authPath := isolate(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(wd) }()
	require.NoError(t, os.Chdir(dir))

	data, err := CollectAll(authPath, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, data.CurrentDir)
}
