// Package syspath discovers default compiler and SDK include directories.
//
// Fixed roots such as /usr/include are returned as is. Toolchains that install
// under a version-numbered directory are found by a version-guided descent:
// at each step the greatest version-named subdirectory is entered and a fixed
// suffix is appended.
package syspath

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
)

// MaxSegments bounds the number of descent steps of a layout
const MaxSegments = 8

// Platform is a platform family with its own include layout
type Platform string

// Supported platform families
const (
	Linux   Platform = "linux"
	Darwin  Platform = "darwin"
	Windows Platform = "windows"
	FreeBSD Platform = "freebsd"
	Unix    Platform = "unix"
)

// Platforms lists every known family
var Platforms = []Platform{Linux, Darwin, Windows, FreeBSD, Unix}

// Current returns the family of the running OS
func Current() Platform {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Platform {
	switch goos {
	case "linux", "android":
		return Linux
	case "darwin", "ios":
		return Darwin
	case "windows":
		return Windows
	case "freebsd":
		return FreeBSD
	default:
		return Unix
	}
}

// ParsePlatform parses a configured platform name. "" and "auto" mean Current().
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Current(), nil
	case "linux":
		return Linux, nil
	case "darwin", "macos", "osx":
		return Darwin, nil
	case "windows", "win":
		return Windows, nil
	case "freebsd":
		return FreeBSD, nil
	case "unix", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		return Unix, nil
	}
	return "", derrors.NewValidationError("platform", fmt.Sprintf("unknown platform %q", name), nil)
}

// Layout describes a version-guided descent. For each segment the greatest
// version-named subdirectory of the current path is entered, then the segment
// is joined ("" joins nothing).
type Layout struct {
	Root     string   `koanf:"root" json:"root"`
	Segments []string `koanf:"segments" json:"segments"`
}

func (l Layout) String() string {
	var b strings.Builder
	b.WriteString(l.Root)
	for _, seg := range l.Segments {
		b.WriteString("/<version>")
		if seg != "" {
			b.WriteString("/" + seg)
		}
	}
	return b.String()
}

// Validate checks the layout is well formed
func (l Layout) Validate() error {
	if strings.TrimSpace(l.Root) == "" {
		return derrors.NewValidationError("root", "layout root is empty", nil)
	}
	if len(l.Segments) > MaxSegments {
		return derrors.NewValidationError("segments",
			fmt.Sprintf("layout has %d segments, at most %d allowed", len(l.Segments), MaxSegments), nil)
	}
	for _, seg := range l.Segments {
		if filepath.IsAbs(seg) || strings.HasPrefix(seg, "/") {
			return derrors.NewValidationError("segments", fmt.Sprintf("segment %q must be relative", seg), nil)
		}
		for _, part := range strings.Split(filepath.ToSlash(seg), "/") {
			if part == ".." {
				return derrors.NewValidationError("segments", fmt.Sprintf("segment %q leaves the layout", seg), nil)
			}
		}
	}
	return nil
}

// Descend walks the layout and returns the resulting directory.
// It fails with a NotFoundError when a step has no version-named subdirectory
// and with an IOError when a level cannot be listed.
func Descend(layout Layout) (string, error) {
	if err := layout.Validate(); err != nil {
		return "", err
	}

	current := layout.Root
	for _, seg := range layout.Segments {
		names, err := subdirectories(current)
		if err != nil {
			return "", derrors.NewIOError(current, "failed to list layout level", err)
		}
		best, ok := GreatestVersion(names)
		if !ok {
			return "", derrors.NewNotFoundError(current, fmt.Sprintf("no version-named directory under %s", current))
		}
		current = filepath.Join(current, best, seg)
	}

	info, err := os.Stat(current)
	if err != nil || !info.IsDir() {
		return "", derrors.NewNotFoundError(current, fmt.Sprintf("%s is not a directory", current))
	}
	return current, nil
}

func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, entry.Name())); err == nil && info.IsDir() {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}

// Heuristic holds the per-platform tables used to build system paths
type Heuristic struct {
	Static  map[Platform][]string
	Layouts map[Platform][]Layout
	Log     *logger.Logger
}

// WithLayouts returns a copy of h with extra layouts appended for p
func (h *Heuristic) WithLayouts(p Platform, layouts ...Layout) *Heuristic {
	out := &Heuristic{
		Static:  make(map[Platform][]string, len(h.Static)),
		Layouts: make(map[Platform][]Layout, len(h.Layouts)),
		Log:     h.Log,
	}
	for k, v := range h.Static {
		out.Static[k] = append([]string(nil), v...)
	}
	for k, v := range h.Layouts {
		out.Layouts[k] = append([]Layout(nil), v...)
	}
	out.Layouts[p] = append(out.Layouts[p], layouts...)
	return out
}

// Paths returns the static directories of p followed by every layout of p that
// resolves. Layouts that do not resolve are skipped. The result may be empty.
func (h *Heuristic) Paths(p Platform) []string {
	log := h.Log
	if log == nil {
		log = logger.Discard()
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			paths = append(paths, dir)
		}
	}

	for _, dir := range h.Static[p] {
		add(dir)
	}
	for _, layout := range h.Layouts[p] {
		dir, err := Descend(layout)
		if err != nil {
			log.Debug().Str("layout", layout.String()).Err(err).Msg("Skipping layout")
			continue
		}
		add(dir)
	}
	return paths
}

// Source returns a path source evaluating the heuristic for p at query time
func (h *Heuristic) Source(p Platform) pathset.Source {
	return &heuristicSource{h: h, platform: p}
}

type heuristicSource struct {
	h        *Heuristic
	platform Platform
}

func (s *heuristicSource) Paths() ([]string, error) {
	return s.h.Paths(s.platform), nil
}

func (s *heuristicSource) String() string {
	return "heuristic(" + string(s.platform) + ")"
}

// DefaultSystemPaths evaluates the built-in tables for p
func DefaultSystemPaths(p Platform) []string {
	return Default().Paths(p)
}
