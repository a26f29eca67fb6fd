// Package pathset resolves configured path sources into ordered directory lists.
//
// A source is either a fixed list or a provider evaluated at query time.
// Resolution is a pure read: it never changes the source or any configuration.
package pathset

import (
	"fmt"

	"github.com/NikitaCOEUR/hdrcomp/internal/derrors"
	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
)

// Source provides an ordered list of directories
type Source interface {
	Paths() ([]string, error)
}

// Static is a fixed, ordered directory list
type Static []string

// Paths returns a copy of the list
func (s Static) Paths() ([]string, error) {
	out := make([]string, len(s))
	copy(out, s)
	return out, nil
}

func (s Static) String() string {
	return fmt.Sprintf("static%v", []string(s))
}

// Func is a provider called once per resolution
type Func func() ([]string, error)

// Paths invokes the provider
func (f Func) Paths() ([]string, error) {
	return f()
}

func (f Func) String() string {
	return "func"
}

// chain concatenates sources in order
type chain struct {
	sources []Source
	log     *logger.Logger
}

// Chain concatenates sources. A failing member is logged and contributes
// nothing; the remaining members still resolve.
func Chain(log *logger.Logger, sources ...Source) Source {
	if log == nil {
		log = logger.Discard()
	}
	return &chain{sources: sources, log: log}
}

func (c *chain) Paths() ([]string, error) {
	var out []string
	for _, src := range c.sources {
		out = append(out, Resolve(src, c.log)...)
	}
	return out, nil
}

func (c *chain) String() string {
	return fmt.Sprintf("chain(%d)", len(c.sources))
}

// Describe returns a short label for a source, used in logs and errors
func Describe(src Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}

// ResolveE resolves src, returning a ConfigurationError when the provider fails
// or panics. A nil source, or a provider returning nil, yields an empty list.
func ResolveE(src Source) (paths []string, err error) {
	if src == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			paths = nil
			err = derrors.NewConfigurationError(Describe(src), "path source panicked", fmt.Errorf("%v", r))
		}
	}()

	raw, err := src.Paths()
	if err != nil {
		return nil, derrors.NewConfigurationError(Describe(src), "path source failed", err)
	}

	paths = make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// Resolve resolves src and degrades any failure to an empty list, logging it.
func Resolve(src Source, log *logger.Logger) []string {
	paths, err := ResolveE(src)
	if err != nil {
		if log != nil {
			log.Warn().Str("source", Describe(src)).Err(err).Msg("Ignoring path source")
		}
		return nil
	}
	return paths
}
