// Package completion finds header files completing a partially typed include
// directive and exposes the operations an editor backend needs.
package completion

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/include"
)

// Candidate is one completion suggestion
type Candidate struct {
	// DisplayText is the delimiter followed by the path relative to
	// SourceDirectory, e.g. `"foo/bar.h`. Directories end with '/'.
	DisplayText string
	// SourceDirectory is the search directory the candidate was found under
	SourceDirectory string
	IsDirectory     bool
}

// Delimiter returns the candidate's opening delimiter
func (c Candidate) Delimiter() include.Delimiter {
	d, _ := include.DelimiterOf(c.DisplayText)
	return d
}

// Path returns the display text without its delimiter
func (c Candidate) Path() string {
	if _, ok := include.DelimiterOf(c.DisplayText); ok {
		return c.DisplayText[1:]
	}
	return c.DisplayText
}

// FileLocation returns the file or directory the candidate denotes
func (c Candidate) FileLocation() string {
	return filepath.Join(c.SourceDirectory, filepath.FromSlash(c.Path()))
}

// ParseCandidate rebuilds a candidate from the display text and directory a
// host handed back.
func ParseCandidate(display, sourceDir string) (Candidate, error) {
	if _, ok := include.DelimiterOf(display); !ok {
		return Candidate{}, fmt.Errorf("candidate %q does not start with a delimiter", display)
	}
	return Candidate{
		DisplayText:     display,
		SourceDirectory: sourceDir,
		IsDirectory:     strings.HasSuffix(display, "/"),
	}, nil
}

// dedupe keeps the first candidate for each display text
func dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.DisplayText]; ok {
			continue
		}
		seen[c.DisplayText] = struct{}{}
		out = append(out, c)
	}
	return out
}
