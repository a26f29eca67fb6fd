//go:build !dev

package trace

import (
	"context"
	"testing"
)

func TestRelease_NoOp(t *testing.T) {
	t.Setenv(EnvVar, t.TempDir()+"/trace.out")

	stop := Init()
	defer stop()

	if IsEnabled() {
		t.Error("tracing should never be enabled in release builds")
	}

	called := false
	WithRegion(context.Background(), "scan", func() { called = true })
	if !called {
		t.Error("WithRegion must run its function")
	}
	Log(context.Background(), "query", "ignored")
}
