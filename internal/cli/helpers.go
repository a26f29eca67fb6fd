package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/completion"
	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/include"
)

// resolveDir returns dir as an absolute path, defaulting to the working directory
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", derrors.NewIOError(".", "failed to get current directory", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", derrors.NewIOError(dir, "failed to resolve directory", err)
	}
	return abs, nil
}

// parseLine parses the text of line before column; a negative column means
// the whole line
func parseLine(line string, column int) (*include.Reference, bool) {
	if column < 0 {
		return include.Parse(line)
	}
	return include.ParseAt(line, column)
}

// formatCandidate renders a candidate as display, source directory and kind
func formatCandidate(c completion.Candidate) string {
	kind := "file"
	if c.IsDirectory {
		kind = "dir"
	}
	return strings.Join([]string{c.DisplayText, c.SourceDirectory, kind}, "\t")
}
