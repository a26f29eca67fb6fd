package scanner

import (
	"strings"
)

// Built-in mode ids
const (
	ModeC      = "c"
	ModeCPP    = "c++"
	ModeObjC   = "objc"
	ModeObjCPP = "objc++"
	ModeCUDA   = "cuda"

	// DefaultMode is used for modes without a filter of their own
	DefaultMode = ModeCPP
)

var (
	cHeaders   = MustRegexFilter(`\.([Hh]|[Hh]h|[Hh]pp)$`)
	cppHeaders = MustRegexFilter(`(\.([Hh]|[Hh]h|[Hh]pp|[Hh]xx)|^[^.]+)$`)
	objcHeader = MustRegexFilter(`\.[Hh]$`)
	cudaHeader = AnyFilter{cppHeaders, MustRegexFilter(`\.cuh$`)}
)

var modeAliases = map[string]string{
	"cpp":           ModeCPP,
	"cc":            ModeCPP,
	"cxx":           ModeCPP,
	"objective-c":   ModeObjC,
	"objective-cpp": ModeObjCPP,
	"objc++":        ModeObjCPP,
	"objcpp":        ModeObjCPP,
}

// NormalizeMode maps editor mode names ("c++-mode", "c-ts-mode", "cpp") to mode ids
func NormalizeMode(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	m = strings.TrimSuffix(m, "-ts-mode")
	m = strings.TrimSuffix(m, "-mode")
	if alias, ok := modeAliases[m]; ok {
		return alias
	}
	return m
}

// ModeFilters maps mode ids to filters
type ModeFilters map[string]Filter

// DefaultModeFilters returns the built-in filters
func DefaultModeFilters() ModeFilters {
	return ModeFilters{
		ModeC:      cHeaders,
		ModeCPP:    cppHeaders,
		ModeObjC:   objcHeader,
		ModeObjCPP: cppHeaders,
		ModeCUDA:   cudaHeader,
	}
}

// For returns the filter for mode, falling back to DefaultMode
func (m ModeFilters) For(mode string) Filter {
	if f, ok := m[NormalizeMode(mode)]; ok && f != nil {
		return f
	}
	if f, ok := m[DefaultMode]; ok && f != nil {
		return f
	}
	return cppHeaders
}

// Merge returns a copy of m with overrides applied
func (m ModeFilters) Merge(overrides ModeFilters) ModeFilters {
	out := make(ModeFilters, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[NormalizeMode(k)] = v
	}
	return out
}
