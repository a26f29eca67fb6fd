package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/bmatcuk/doublestar"
)

// Filter decides whether a file name is a header worth offering
type Filter interface {
	Match(name string) bool
}

// RegexFilter matches names against a regular expression
type RegexFilter struct {
	re *regexp.Regexp
}

// NewRegexFilter compiles expr
func NewRegexFilter(expr string) (*RegexFilter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, derrors.NewValidationError("regex", fmt.Sprintf("invalid filter regex %q", expr), err)
	}
	return &RegexFilter{re: re}, nil
}

// MustRegexFilter is NewRegexFilter for built-in patterns
func MustRegexFilter(expr string) *RegexFilter {
	f, err := NewRegexFilter(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// Match reports whether name matches
func (f *RegexFilter) Match(name string) bool {
	return f.re.MatchString(name)
}

func (f *RegexFilter) String() string {
	return "regex:" + f.re.String()
}

// GlobFilter matches names against a doublestar pattern such as "*.{h,hpp}"
type GlobFilter struct {
	pattern string
}

// NewGlobFilter validates pattern
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, derrors.NewValidationError("glob", "empty filter glob", nil)
	}
	if _, err := doublestar.Match(pattern, "check.h"); err != nil {
		return nil, derrors.NewValidationError("glob", fmt.Sprintf("invalid filter glob %q", pattern), err)
	}
	return &GlobFilter{pattern: pattern}, nil
}

// Match reports whether name matches; a malformed pattern matches nothing
func (f *GlobFilter) Match(name string) bool {
	ok, err := doublestar.Match(f.pattern, name)
	return err == nil && ok
}

func (f *GlobFilter) String() string {
	return "glob:" + f.pattern
}

// AnyFilter matches when any member matches
type AnyFilter []Filter

// Match reports whether any member matches
func (a AnyFilter) Match(name string) bool {
	for _, f := range a {
		if f != nil && f.Match(name) {
			return true
		}
	}
	return false
}

// FilterSpec is the configured form of a filter; exactly one field is set
type FilterSpec struct {
	Regex string `koanf:"regex" json:"regex,omitempty"`
	Glob  string `koanf:"glob" json:"glob,omitempty"`
}

// Build compiles the filter
func (s FilterSpec) Build() (Filter, error) {
	switch {
	case s.Regex != "" && s.Glob != "":
		return nil, derrors.NewValidationError("filter", "set either regex or glob, not both", nil)
	case s.Regex != "":
		return NewRegexFilter(s.Regex)
	case s.Glob != "":
		return NewGlobFilter(s.Glob)
	}
	return nil, derrors.NewValidationError("filter", "filter needs a regex or a glob", nil)
}

// Describe returns a short label for a filter
func Describe(f Filter) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", f)
}
