//go:build dev

// Package trace captures execution traces of completion queries. Tracing is
// compiled in only with the dev build tag and switched on by pointing
// HDRCOMP_TRACE at an output file:
//
//	HDRCOMP_TRACE=/tmp/hdrcomp.trace hdrcomp complete --line '#include <sys/'
//	go tool trace /tmp/hdrcomp.trace
package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	rtrace "runtime/trace"
	"sync"
	"sync/atomic"
)

// EnvVar names the file the trace is written to
const EnvVar = "HDRCOMP_TRACE"

// recorder owns the trace output while a capture is running
type recorder struct {
	mu  sync.Mutex
	out io.WriteCloser
	on  atomic.Bool
}

var rec recorder

func (r *recorder) start(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rtrace.Start(f); err != nil {
		_ = f.Close()
		return err
	}
	r.out = f
	r.on.Store(true)
	return nil
}

func (r *recorder) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.on.Swap(false) {
		rtrace.Stop()
	}
	if r.out != nil {
		_ = r.out.Close()
		r.out = nil
	}
}

// Init begins a capture when HDRCOMP_TRACE is set and returns the function
// that ends it. A capture that cannot begin is reported and skipped.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}
	if err := rec.start(path); err != nil {
		fmt.Fprintf(os.Stderr, "hdrcomp: tracing disabled (%s): %v\n", path, err)
		return func() {}
	}
	return rec.stop
}

// Log attaches a message to the current query's trace
func Log(ctx context.Context, category, message string) {
	if rec.on.Load() {
		rtrace.Log(ctx, category, message)
	}
}

// WithRegion runs f, marking it as a region when a capture is running
func WithRegion(ctx context.Context, regionType string, f func()) {
	if !rec.on.Load() {
		f()
		return
	}
	rtrace.WithRegion(ctx, regionType, f)
}

// IsEnabled reports whether a capture is running
func IsEnabled() bool {
	return rec.on.Load()
}
