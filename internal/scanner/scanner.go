// Package scanner lists one directory and keeps the entries that can complete
// an include path: subdirectories, and files accepted by a mode filter.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
)

// Entry is a retained directory entry
type Entry struct {
	Name  string
	IsDir bool
}

// Scan lists dir and returns the entries whose name starts with fragment and
// that are either directories or files accepted by filter. A nil filter
// accepts every file. "." and ".." are never returned. Entries are sorted by
// byte order.
//
// An unreadable or vanished directory yields an IOError.
func Scan(dir, fragment string, filter Filter) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, derrors.NewIOError(dir, "failed to list directory", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if name == "." || name == ".." || !strings.HasPrefix(name, fragment) {
			continue
		}

		isDir := de.IsDir()
		if !isDir && de.Type()&os.ModeSymlink != 0 {
			// Dangling links stay files
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = info.IsDir()
			}
		}

		if isDir || filter == nil || filter.Match(name) {
			entries = append(entries, Entry{Name: name, IsDir: isDir})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// IsDir reports whether path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
