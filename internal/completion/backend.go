package completion

import (
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/include"
)

// Operation names a host-facing backend operation
type Operation string

// Operations understood by Backend
const (
	OpPrefix         Operation = "prefix"
	OpCandidates     Operation = "candidates"
	OpMeta           Operation = "meta"
	OpLocation       Operation = "location"
	OpPostCompletion Operation = "post-completion"
)

// Operations lists every backend operation in call order
var Operations = []Operation{OpPrefix, OpCandidates, OpMeta, OpLocation, OpPostCompletion}

// Location is where "jump to file" should go
type Location struct {
	File string
	Line int
}

// Action tells the host what to do after a candidate was inserted
type Action struct {
	// Insert is text to insert at the cursor, usually the closing delimiter
	Insert string
	// Requery asks the host to start a new completion at the cursor
	Requery bool
}

// Backend groups the operations an editor completion backend performs
type Backend struct {
	engine *Engine
	mode   string
}

// NewBackend returns a backend completing for mode
func NewBackend(engine *Engine, mode string) *Backend {
	return &Backend{engine: engine, mode: mode}
}

// Prefix decides whether completion applies to the text before the cursor
func (b *Backend) Prefix(lineBeforeCursor string) (*include.Reference, bool) {
	return include.Parse(lineBeforeCursor)
}

// Candidates returns the completions for ref
func (b *Backend) Candidates(ref *include.Reference) []Candidate {
	return b.engine.Complete(ref, b.mode)
}

// Meta returns the annotation shown next to a candidate
func (b *Backend) Meta(c Candidate) string {
	return c.SourceDirectory
}

// Location returns the file a candidate refers to
func (b *Backend) Location(c Candidate) Location {
	return Location{File: c.FileLocation(), Line: 1}
}

// PostCompletion decides what follows an inserted candidate. A directory asks
// for another query; a file gets its closing delimiter unless textAfterCursor
// already starts with it.
func (b *Backend) PostCompletion(c Candidate, textAfterCursor string) Action {
	if c.IsDirectory {
		return Action{Requery: true}
	}
	closing := c.Delimiter().Close()
	if strings.HasPrefix(textAfterCursor, closing) {
		return Action{}
	}
	return Action{Insert: closing}
}
