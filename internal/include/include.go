// Package include recognizes a partially typed #include or #import directive
// in the text before the cursor.
package include

import (
	"regexp"
	"strings"
)

// Delimiter is the opening character of the include path
type Delimiter int

const (
	// Quote is a "..." include, searched in user paths then system paths
	Quote Delimiter = iota
	// Angle is a <...> include, searched in system paths only
	Angle
)

// Open returns the opening delimiter text
func (d Delimiter) Open() string {
	if d == Angle {
		return "<"
	}
	return `"`
}

// Close returns the matching closing delimiter text
func (d Delimiter) Close() string {
	if d == Angle {
		return ">"
	}
	return `"`
}

func (d Delimiter) String() string {
	if d == Angle {
		return "angle"
	}
	return "quote"
}

// DelimiterOf returns the delimiter a display string starts with.
func DelimiterOf(s string) (Delimiter, bool) {
	switch {
	case strings.HasPrefix(s, `"`):
		return Quote, true
	case strings.HasPrefix(s, "<"):
		return Angle, true
	}
	return Quote, false
}

// Reference is a parsed, partially typed include directive
type Reference struct {
	Delimiter Delimiter
	// RawPrefix is everything typed after the delimiter
	RawPrefix string
	// Subdirectory is the part of RawPrefix before the last '/', without the
	// trailing slash. Empty when RawPrefix has no '/'.
	Subdirectory string
	// Fragment is the partial file name after the last '/'
	Fragment string
}

// HasSubdirectory reports whether the prefix names a subdirectory
func (r *Reference) HasSubdirectory() bool {
	return strings.Contains(r.RawPrefix, "/")
}

// IsAbsolute reports whether the prefix is an absolute path, e.g. "/opt/x
func (r *Reference) IsAbsolute() bool {
	return strings.HasPrefix(r.RawPrefix, "/")
}

// DisplayPrefix is the text candidates found under Subdirectory start with.
func (r *Reference) DisplayPrefix() string {
	if !r.HasSubdirectory() {
		return r.Delimiter.Open()
	}
	return r.Delimiter.Open() + r.Subdirectory + "/"
}

// String returns the directive text as typed, starting at the delimiter
func (r *Reference) String() string {
	return r.Delimiter.Open() + r.RawPrefix
}

// The whole text before the cursor must match: the directive starts at column 0
// and the path is still open.
var directivePattern = regexp.MustCompile(`^#[ \t]*(?:include|import)[ \t]+(?:"([^"]*)|<([^>]*))$`)

// Parse recognizes an open include directive in the text before the cursor.
func Parse(lineBeforeCursor string) (*Reference, bool) {
	m := directivePattern.FindStringSubmatchIndex(lineBeforeCursor)
	if m == nil {
		return nil, false
	}

	ref := &Reference{}
	switch {
	case m[2] >= 0:
		ref.Delimiter = Quote
		ref.RawPrefix = lineBeforeCursor[m[2]:m[3]]
	default:
		ref.Delimiter = Angle
		ref.RawPrefix = lineBeforeCursor[m[4]:m[5]]
	}

	if i := strings.LastIndex(ref.RawPrefix, "/"); i >= 0 {
		ref.Subdirectory = ref.RawPrefix[:i]
		ref.Fragment = ref.RawPrefix[i+1:]
	} else {
		ref.Fragment = ref.RawPrefix
	}

	return ref, true
}

// ParseAt parses line truncated at the byte offset column.
// Columns outside the line are clamped.
func ParseAt(line string, column int) (*Reference, bool) {
	if column < 0 {
		column = 0
	}
	if column > len(line) {
		column = len(line)
	}
	return Parse(line[:column])
}
