package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/hdrcomp/internal/config"
	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Local(t *testing.T) {
	p := newProject(t)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()
	require.NoError(t, os.Chdir(p.dir))

	out, err := captureOutput(t, func() error { return Init(false) })
	require.NoError(t, err)
	path := filepath.Join(p.dir, ".hdrcomp.yml")
	assert.Contains(t, out, path)

	// The sample config is valid as written
	result, err := config.Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)

	_, err = captureOutput(t, func() error { return Init(false) })
	require.Error(t, err)
	assert.Equal(t, derrors.CodeConfiguration, derrors.CodeOf(err))
}

func TestInit_Global(t *testing.T) {
	newProject(t)

	out, err := captureOutput(t, func() error { return Init(true) })
	require.NoError(t, err)

	globalPath, err := config.GetGlobalConfigPath()
	require.NoError(t, err)
	assert.Contains(t, out, globalPath)
	assert.FileExists(t, globalPath)
}
