package include

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		delim    Delimiter
		raw      string
		subdir   string
		fragment string
	}{
		{name: "quoted", line: `#include "foo`, delim: Quote, raw: "foo", fragment: "foo"},
		{name: "angle with subdir", line: "#include <foo/bar", delim: Angle, raw: "foo/bar", subdir: "foo", fragment: "bar"},
		{name: "empty prefix", line: `#include "`, delim: Quote},
		{name: "nested subdir", line: "#include <a/b/c", delim: Angle, raw: "a/b/c", subdir: "a/b", fragment: "c"},
		{name: "trailing slash", line: "#include <sys/", delim: Angle, raw: "sys/", subdir: "sys"},
		{name: "import", line: "#import <Foundation/NS", delim: Angle, raw: "Foundation/NS", subdir: "Foundation", fragment: "NS"},
		{name: "blanks after hash", line: "#  \tinclude\t\"x", delim: Quote, raw: "x", fragment: "x"},
		{name: "quote inside angle", line: `#include <we"ird`, delim: Angle, raw: `we"ird`, fragment: `we"ird`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := Parse(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.delim, ref.Delimiter)
			assert.Equal(t, tt.raw, ref.RawPrefix)
			assert.Equal(t, tt.subdir, ref.Subdirectory)
			assert.Equal(t, tt.fragment, ref.Fragment)
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	lines := []string{
		"",
		"int main() {",
		` #include "foo`,
		`#include "foo.h"`,
		"#include <foo.h>",
		`#include"foo`,
		"#define FOO",
		"#includes <foo",
		`// #include "foo`,
	}

	for _, line := range lines {
		ref, ok := Parse(line)
		assert.False(t, ok, "line %q", line)
		assert.Nil(t, ref)
	}
}

func TestParseAt(t *testing.T) {
	line := `#include "foo/bar.h"`

	ref, ok := ParseAt(line, len(`#include "foo/ba`))
	require.True(t, ok)
	assert.Equal(t, "foo", ref.Subdirectory)
	assert.Equal(t, "ba", ref.Fragment)

	_, ok = ParseAt(line, len(line))
	assert.False(t, ok, "closed directive")

	_, ok = ParseAt(line, -4)
	assert.False(t, ok)

	ref, ok = ParseAt(`#include "x`, 1000)
	require.True(t, ok)
	assert.Equal(t, "x", ref.Fragment)
}

func TestReference_DisplayPrefix(t *testing.T) {
	ref, ok := Parse("#include <sys/ty")
	require.True(t, ok)
	assert.Equal(t, "<sys/", ref.DisplayPrefix())
	assert.Equal(t, "<sys/ty", ref.String())
	assert.True(t, ref.HasSubdirectory())

	ref, ok = Parse(`#include "ty`)
	require.True(t, ok)
	assert.Equal(t, `"`, ref.DisplayPrefix())
	assert.False(t, ref.HasSubdirectory())
}

func TestReference_IsAbsolute(t *testing.T) {
	ref, ok := Parse(`#include "/x`)
	require.True(t, ok)
	assert.True(t, ref.IsAbsolute())
	assert.Equal(t, "", ref.Subdirectory)
	assert.Equal(t, `"/`, ref.DisplayPrefix())

	ref, ok = Parse("#include <sys/x")
	require.True(t, ok)
	assert.False(t, ref.IsAbsolute())
}

func TestDelimiter(t *testing.T) {
	assert.Equal(t, `"`, Quote.Open())
	assert.Equal(t, `"`, Quote.Close())
	assert.Equal(t, "<", Angle.Open())
	assert.Equal(t, ">", Angle.Close())
	assert.Equal(t, "angle", Angle.String())

	d, ok := DelimiterOf("<vector")
	assert.True(t, ok)
	assert.Equal(t, Angle, d)

	_, ok = DelimiterOf("vector")
	assert.False(t, ok)
}
