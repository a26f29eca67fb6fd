package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaths(t *testing.T) {
	p := newProject(t)
	p.write(t, ".hdrcomp.yml", "user_paths: [include, vendor]\nsystem_paths: [/opt/sys]\n")

	out, err := captureOutput(t, func() error {
		return Paths(PathsParams{AuthPath: p.authPath, Dir: p.dir})
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"user\t" + filepath.Join(p.dir, "include"),
		"user\t" + filepath.Join(p.dir, "vendor"),
		"system\t/opt/sys",
	}, "\n")+"\n", out)

	out, err = captureOutput(t, func() error {
		return Paths(PathsParams{AuthPath: p.authPath, Dir: p.dir, Kind: PathsSystem})
	})
	require.NoError(t, err)
	assert.Equal(t, "system\t/opt/sys\n", out)

	out, err = captureOutput(t, func() error {
		return Paths(PathsParams{AuthPath: p.authPath, Dir: p.dir, Kind: PathsUser})
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "system\t")
}

func TestPaths_Defaults(t *testing.T) {
	out, err := captureOutput(t, func() error {
		return Paths(PathsParams{Defaults: true, Platform: "unix"})
	})
	require.NoError(t, err)

	want := syspath.DefaultSystemPaths(syspath.Unix)
	got := strings.Fields(out)
	assert.Equal(t, want, got)
}

func TestPaths_UnknownKind(t *testing.T) {
	_, err := captureOutput(t, func() error {
		return Paths(PathsParams{Kind: "both"})
	})
	require.Error(t, err)
	assert.Equal(t, derrors.CodeValidation, derrors.CodeOf(err))
}
