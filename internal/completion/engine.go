package completion

import (
	"path/filepath"
	"time"

	"github.com/NikitaCOEUR/hdrcomp/internal/include"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
	"github.com/NikitaCOEUR/hdrcomp/internal/scanner"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
)

// Options configures an Engine
type Options struct {
	// UserPaths are searched first for quoted includes. Nil means the current directory.
	UserPaths pathset.Source
	// SystemPaths are searched for both include kinds. Nil means the platform heuristic.
	SystemPaths pathset.Source
	// Filters maps modes to header filters. Nil means the built-in filters.
	Filters scanner.ModeFilters
	Logger  *logger.Logger
}

// Engine answers completion queries. It holds no state between queries:
// sources are resolved and directories listed anew every time.
type Engine struct {
	user    pathset.Source
	system  pathset.Source
	filters scanner.ModeFilters
	log     *logger.Logger
}

// NewEngine creates an engine, filling defaults for unset options
func NewEngine(opts Options) *Engine {
	e := &Engine{
		user:    opts.UserPaths,
		system:  opts.SystemPaths,
		filters: opts.Filters,
		log:     opts.Logger,
	}
	if e.log == nil {
		e.log = logger.Discard()
	}
	if e.user == nil {
		e.user = pathset.Static{"."}
	}
	if e.system == nil {
		h := syspath.Default()
		h.Log = e.log
		e.system = h.Source(syspath.Current())
	}
	if e.filters == nil {
		e.filters = scanner.DefaultModeFilters()
	}
	return e
}

// Complete returns the candidates for ref using the filter of mode
func (e *Engine) Complete(ref *include.Reference, mode string) []Candidate {
	return complete(ref, e.user, e.system, e.filters.For(mode), e.log)
}

// Complete searches user then system paths for a quoted reference and system
// paths only for an angle reference. It never fails: unusable sources and
// directories contribute nothing.
func Complete(ref *include.Reference, user, system pathset.Source, filter scanner.Filter) []Candidate {
	return complete(ref, user, system, filter, logger.Discard())
}

// filesystemRoot is searched for absolute prefixes
var filesystemRoot = string(filepath.Separator)

func complete(ref *include.Reference, user, system pathset.Source, filter scanner.Filter, log *logger.Logger) []Candidate {
	if ref == nil {
		return []Candidate{}
	}

	var dirs []string
	switch {
	case ref.IsAbsolute():
		// The path names itself; search paths do not apply
		dirs = []string{filesystemRoot}
	case ref.Delimiter == include.Quote:
		dirs = append(dirs, pathset.Resolve(user, log)...)
		dirs = append(dirs, pathset.Resolve(system, log)...)
	default:
		dirs = pathset.Resolve(system, log)
	}

	log.Debug().
		Str("prefix", ref.String()).
		Strs("dirs", dirs).
		Msg("Searching include directories")

	candidates := []Candidate{}
	for _, dir := range dirs {
		candidates = append(candidates, searchDir(ref, dir, filter, log)...)
	}

	return dedupe(candidates)
}

// searchDir scans one search directory, descending into the reference's
// subdirectory when it exists there.
func searchDir(ref *include.Reference, dir string, filter scanner.Filter, log *logger.Logger) []Candidate {
	if !scanner.IsDir(dir) {
		log.Debug().Str("dir", dir).Msg("Skipping missing directory")
		return nil
	}

	source := dir
	if abs, err := filepath.Abs(dir); err == nil {
		source = abs
	}

	scanDir, fragment, prefix := dir, ref.RawPrefix, ref.Delimiter.Open()
	if ref.HasSubdirectory() {
		sub := filepath.Join(dir, filepath.FromSlash(ref.Subdirectory))
		if scanner.IsDir(sub) {
			scanDir, fragment, prefix = sub, ref.Fragment, ref.DisplayPrefix()
		}
	}

	start := time.Now()
	entries, err := scanner.Scan(scanDir, fragment, filter)
	if err != nil {
		log.Debug().Str("dir", scanDir).Err(err).Msg("Skipping unreadable directory")
		return nil
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		text := prefix + entry.Name
		if entry.IsDir {
			text += "/"
		}
		candidates = append(candidates, Candidate{
			DisplayText:     text,
			SourceDirectory: source,
			IsDirectory:     entry.IsDir,
		})
	}

	log.Debug().
		Str("dir", scanDir).
		Str("fragment", fragment).
		Int("matches", len(candidates)).
		Dur("took", time.Since(start)).
		Msg("Scanned directory")

	return candidates
}
