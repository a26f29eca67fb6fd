package completion

import (
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Operations(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "gfx/canvas.h", "gfx/shaders/basic.h")

	engine := NewEngine(Options{UserPaths: pathset.Static{root}, SystemPaths: pathset.Static{}})
	backend := NewBackend(engine, "c++")

	ref, ok := backend.Prefix(`#include "gfx/`)
	require.True(t, ok)

	candidates := backend.Candidates(ref)
	require.Len(t, candidates, 2)
	canvas, shaders := candidates[0], candidates[1]
	assert.Equal(t, `"gfx/canvas.h`, canvas.DisplayText)
	assert.Equal(t, `"gfx/shaders/`, shaders.DisplayText)

	assert.Equal(t, root, backend.Meta(canvas))
	assert.Equal(t, Location{File: filepath.Join(root, "gfx", "canvas.h"), Line: 1}, backend.Location(canvas))

	assert.Equal(t, Action{Insert: `"`}, backend.PostCompletion(canvas, ""))
	assert.Equal(t, Action{}, backend.PostCompletion(canvas, `"  // comment`))
	assert.Equal(t, Action{Requery: true}, backend.PostCompletion(shaders, ""))

	_, ok = backend.Prefix("int x;")
	assert.False(t, ok)
}

func TestBackend_PostCompletionAngle(t *testing.T) {
	backend := NewBackend(NewEngine(Options{}), "c")
	c := Candidate{DisplayText: "<stdio.h", SourceDirectory: "/usr/include"}

	assert.Equal(t, Action{Insert: ">"}, backend.PostCompletion(c, ""))
	assert.Equal(t, Action{}, backend.PostCompletion(c, ">"))
}

func TestParseCandidate(t *testing.T) {
	c, err := ParseCandidate("<sys/", "/usr/include")
	require.NoError(t, err)
	assert.True(t, c.IsDirectory)
	assert.Equal(t, "sys/", c.Path())
	assert.Equal(t, filepath.Join("/usr/include", "sys"), c.FileLocation())

	c, err = ParseCandidate(`"a/b.h`, "/src")
	require.NoError(t, err)
	assert.False(t, c.IsDirectory)
	assert.Equal(t, filepath.Join("/src", "a", "b.h"), c.FileLocation())

	_, err = ParseCandidate("stdio.h", "/usr/include")
	assert.Error(t, err)
}

func TestOperations(t *testing.T) {
	assert.Equal(t, []Operation{OpPrefix, OpCandidates, OpMeta, OpLocation, OpPostCompletion}, Operations)
}
