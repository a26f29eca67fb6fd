package cli

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/hdrcomp/internal/completion"
	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/timing"
	"github.com/NikitaCOEUR/hdrcomp/internal/trace"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	AuthPath string
	LogLevel string
	Dir      string
	// Line is the source line; only the text before Column is considered
	Line string
	// Column is the cursor position in bytes, negative for end of line
	Column   int
	Mode     string
	Platform string
}

// Complete prints one candidate per line as display, source directory and
// kind separated by tabs. A line that is not an include prints nothing.
func Complete(params CompleteParams) error {
	comps, err := initializeComponents(params.AuthPath, params.LogLevel)
	if err != nil {
		return err
	}
	timer := timing.NewTimer()

	ref, ok := parseLine(params.Line, params.Column)
	if !ok {
		comps.log.Debug().Str("line", params.Line).Msg("Not an include directive")
		return nil
	}

	dir, err := resolveDir(params.Dir)
	if err != nil {
		return err
	}
	sess, err := comps.open(dir, params.Platform)
	if err != nil {
		return err
	}
	timer.Mark("config")

	var candidates []completion.Candidate
	ctx := context.Background()
	trace.Log(ctx, "query", ref.String())
	trace.WithRegion(ctx, "complete", func() {
		candidates = sess.engine.Complete(ref, params.Mode)
	})
	timer.Mark("complete")

	for _, c := range candidates {
		fmt.Println(formatCandidate(c))
	}

	timer.Log(comps.log, "Completion timing")
	return nil
}

// ParseParams contains parameters for the Parse command
type ParseParams struct {
	Line   string
	Column int
}

// Parse prints how the text before the cursor is understood. It fails with a
// NotFoundError when the line is not a partial include directive.
func Parse(params ParseParams) error {
	ref, ok := parseLine(params.Line, params.Column)
	if !ok {
		return derrors.NewNotFoundError("include", "line is not a partial include directive")
	}

	fmt.Printf("delimiter\t%s\n", ref.Delimiter)
	fmt.Printf("prefix\t%s\n", ref.RawPrefix)
	fmt.Printf("subdirectory\t%s\n", ref.Subdirectory)
	fmt.Printf("fragment\t%s\n", ref.Fragment)
	return nil
}

// LocationParams contains parameters for the Location command
type LocationParams struct {
	Display   string
	SourceDir string
}

// Location prints the file a candidate refers to and the line to jump to
func Location(params LocationParams) error {
	c, err := completion.ParseCandidate(params.Display, params.SourceDir)
	if err != nil {
		return derrors.NewValidationError("candidate", "invalid candidate", err)
	}
	loc := completion.NewBackend(nil, "").Location(c)
	fmt.Printf("%s\t%d\n", loc.File, loc.Line)
	return nil
}

// PostParams contains parameters for the Post command
type PostParams struct {
	Display   string
	SourceDir string
	// After is the text following the cursor once the candidate was inserted
	After string
}

// Post prints what the editor should do after inserting a candidate:
// "requery", "insert" followed by the text, or "none".
func Post(params PostParams) error {
	c, err := completion.ParseCandidate(params.Display, params.SourceDir)
	if err != nil {
		return derrors.NewValidationError("candidate", "invalid candidate", err)
	}
	action := completion.NewBackend(nil, "").PostCompletion(c, params.After)

	switch {
	case action.Requery:
		fmt.Println("requery")
	case action.Insert != "":
		fmt.Printf("insert\t%s\n", action.Insert)
	default:
		fmt.Println("none")
	}
	return nil
}
