package config

import (
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
	"github.com/NikitaCOEUR/hdrcomp/internal/pathset"
	"github.com/NikitaCOEUR/hdrcomp/internal/scanner"
	"github.com/NikitaCOEUR/hdrcomp/internal/syspath"
)

// Layer is one loaded configuration file
type Layer struct {
	Path    string
	Dir     string
	Config  *Config
	Global  bool
	Trusted bool
}

// Entry is a path entry together with the layer that declared it
type Entry struct {
	PathEntry
	Dir     string
	File    string
	Trusted bool
}

// Settings is the merged view of a configuration hierarchy
type Settings struct {
	// Layers that took part in the merge, global first then root to leaf
	Layers      []Layer
	UserPaths   []Entry
	SystemPaths []Entry
	// SystemConfigured is true when some layer set system_paths explicitly
	SystemConfigured bool
	Layouts          []syspath.Layout
	Platform         string
	FilterSpecs      map[string]scanner.FilterSpec
}

// LoadHierarchy loads the global config and every local config from the
// filesystem root down to dir, then merges them. Shell entries of local
// configs are only trusted when authMgr allows their directory.
func (l *Loader) LoadHierarchy(dir string, authMgr AuthChecker) (*Settings, error) {
	layers, err := l.Layers(dir, authMgr)
	if err != nil {
		return nil, err
	}
	s := Merge(layers)
	s.Anchor(dir)
	return s, nil
}

// Layers returns the layers that apply to dir, honouring local_only and
// ignore_global.
func (l *Loader) Layers(dir string, authMgr AuthChecker) ([]Layer, error) {
	var locals []Layer
	for _, path := range FindConfigFiles(dir) {
		cfg, err := l.Load(path)
		if err != nil {
			return nil, derrors.NewConfigurationError(path, "failed to load config", err)
		}
		layer := Layer{Path: path, Dir: filepath.Dir(path), Config: cfg}
		if authMgr != nil {
			trusted, err := authMgr.IsAllowed(layer.Dir)
			if err != nil {
				l.logger().Warn().Str("dir", layer.Dir).Err(err).
					Msg("Cannot read authorization, shell paths of this config are skipped")
			}
			layer.Trusted = trusted && err == nil
			if approver, ok := authMgr.(CommandApprover); ok && layer.Trusted {
				layer.Trusted = approver.CommandsApproved(layer.Dir, cfg.ShellCommands())
			}
		}
		locals = append(locals, layer)
	}

	// The nearest local_only layer cuts off everything above it
	ignoreGlobal := false
	for i := len(locals) - 1; i >= 0; i-- {
		if locals[i].Config.LocalOnly {
			locals = locals[i:]
			ignoreGlobal = true
			break
		}
	}
	for _, layer := range locals {
		if layer.Config.IgnoreGlobal {
			ignoreGlobal = true
		}
	}

	layers := make([]Layer, 0, len(locals)+1)
	if !ignoreGlobal {
		if global, err := l.loadGlobal(); err != nil {
			return nil, err
		} else if global != nil {
			layers = append(layers, *global)
		}
	}
	return append(layers, locals...), nil
}

func (l *Loader) loadGlobal() (*Layer, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, nil
	}
	if !fileExists(path) {
		return nil, nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load global config", err)
	}
	return &Layer{Path: path, Dir: filepath.Dir(path), Config: cfg, Global: true, Trusted: true}, nil
}

// Merge combines layers ordered from farthest to nearest. User paths are
// listed nearest layer first; the nearest layer setting system_paths or
// platform wins; layouts accumulate; mode filters of nearer layers override.
// Built-in defaults fill anything no layer sets.
func Merge(layers []Layer) *Settings {
	s := &Settings{
		Layers:      layers,
		FilterSpecs: make(map[string]scanner.FilterSpec),
	}

	userSet := false
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		cfg := layer.Config

		if cfg.UserPaths != nil {
			userSet = true
			s.UserPaths = append(s.UserPaths, entriesOf(layer, cfg.GetUserPaths())...)
		}
		if system, ok := cfg.GetSystemPaths(); ok && !s.SystemConfigured {
			s.SystemConfigured = true
			s.SystemPaths = entriesOf(layer, system)
		}
		if s.Platform == "" && cfg.Platform != "" {
			s.Platform = cfg.Platform
		}
	}

	for _, layer := range layers {
		s.Layouts = append(s.Layouts, layer.Config.SystemLayouts...)
		for mode, spec := range layer.Config.GetModeFilters() {
			s.FilterSpecs[mode] = spec
		}
	}

	defaults := Defaults()
	if !userSet {
		s.UserPaths = entriesOf(Layer{Trusted: true}, defaults.GetUserPaths())
	}
	if s.Platform == "" {
		s.Platform = defaults.Platform
	}
	return s
}

func entriesOf(layer Layer, entries []PathEntry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, Entry{
			PathEntry: e,
			Dir:       layer.Dir,
			File:      layer.Path,
			Trusted:   layer.Global || layer.Trusted,
		})
	}
	return out
}

// Anchor makes entries that no config file declared, the built-in defaults,
// relative to dir
func (s *Settings) Anchor(dir string) {
	for _, group := range [][]Entry{s.UserPaths, s.SystemPaths} {
		for i := range group {
			if group[i].File == "" && group[i].Dir == "" {
				group[i].Dir = dir
			}
		}
	}
}

// ResolvePlatform returns the platform the settings select
func (s *Settings) ResolvePlatform() (syspath.Platform, error) {
	return syspath.ParsePlatform(s.Platform)
}

// UserSource builds the user path source
func (s *Settings) UserSource(log *logger.Logger) pathset.Source {
	return sourceOf(s.UserPaths, log)
}

// SystemSource builds the system path source. Without explicit system_paths
// the platform heuristic is used, extended with any configured layouts.
func (s *Settings) SystemSource(log *logger.Logger) (pathset.Source, error) {
	p, err := s.ResolvePlatform()
	if err != nil {
		return nil, err
	}
	if s.SystemConfigured {
		explicit := sourceOf(s.SystemPaths, log)
		if len(s.Layouts) == 0 {
			return explicit, nil
		}
		h := &syspath.Heuristic{Log: log}
		return pathset.Chain(log, explicit, h.WithLayouts(p, s.Layouts...).Source(p)), nil
	}

	h := syspath.Default()
	h.Log = log
	return h.WithLayouts(p, s.Layouts...).Source(p), nil
}

// Filters builds the mode filters, built-ins overridden by configuration
func (s *Settings) Filters() (scanner.ModeFilters, error) {
	overrides := make(scanner.ModeFilters, len(s.FilterSpecs))
	for mode, spec := range s.FilterSpecs {
		f, err := spec.Build()
		if err != nil {
			return nil, derrors.NewConfigurationError("mode_filters."+mode, "invalid filter", err)
		}
		overrides[mode] = f
	}
	return scanner.DefaultModeFilters().Merge(overrides), nil
}

// ShellEntries returns every shell entry with its trust state
func (s *Settings) ShellEntries() []Entry {
	var out []Entry
	for _, group := range [][]Entry{s.UserPaths, s.SystemPaths} {
		for _, e := range group {
			if e.IsShell() {
				out = append(out, e)
			}
		}
	}
	return out
}

// sourceOf builds one source per entry so a failing entry only loses itself.
// Relative paths resolve against the declaring config's directory.
func sourceOf(entries []Entry, log *logger.Logger) pathset.Source {
	if log == nil {
		log = logger.Discard()
	}

	sources := make([]pathset.Source, 0, len(entries))
	for _, e := range entries {
		if !e.IsShell() {
			sources = append(sources, pathset.Template{Entries: []string{e.Path}, Dir: e.Dir})
			continue
		}
		if !e.Trusted {
			log.Warn().Str("command", e.Sh).Str("config", e.File).
				Msg("Skipping shell path of unauthorized config, run 'hdrcomp allow'")
			continue
		}
		sources = append(sources, pathset.Shell{Command: e.Sh, Dir: e.Dir})
	}

	return pathset.Chain(log, sources...)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
