package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestScan_OrderingAndFilter(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.h", "a.h", "c.txt")

	entries, err := Scan(dir, "", MustRegexFilter(`\.h$`))
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "a.h"}, {Name: "b.h"}}, entries)
}

func TestScan_ByteOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.h", "B.h", "a.h", "_x.h")

	entries, err := Scan(dir, "", cHeaders)
	require.NoError(t, err)
	assert.Equal(t, []string{"B.h", "_x.h", "a.h", "b.h"}, names(entries))
}

func TestScan_PrefixAndDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "foo.h", "foobar.hpp", "foo.c", "bar.h", "foodir/inner.h", "fooext.d/x.h")

	entries, err := Scan(dir, "foo", cHeaders)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "foo.h"},
		{Name: "foobar.hpp"},
		{Name: "foodir", IsDir: true},
		{Name: "fooext.d", IsDir: true},
	}, entries)
}

func TestScan_NilFilterAcceptsAll(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "x.txt", "y.h")

	entries, err := Scan(dir, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt", "y.h"}, names(entries))
}

func TestScan_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.h")))

	entries, err := Scan(dir, "", cHeaders)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Name: "dangling.h"}, {Name: "linked", IsDir: true}}, entries)
}

func TestScan_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	entries, err := Scan(missing, "", cHeaders)
	assert.Nil(t, entries)

	var ioErr *derrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, missing, ioErr.Path)
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "f.h")

	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(filepath.Join(dir, "f.h")))
	assert.False(t, IsDir(filepath.Join(dir, "nope")))
}
