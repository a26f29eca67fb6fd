package timing

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
)

// fakeClock advances by step on every reading
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestTimer_Basic(t *testing.T) {
	timer := NewTimer()

	time.Sleep(10 * time.Millisecond)
	timer.Mark("resolve")

	time.Sleep(10 * time.Millisecond)
	timer.Mark("scan")

	if elapsed := timer.Elapsed(); elapsed < 20*time.Millisecond {
		t.Errorf("Expected at least 20ms, got %v", elapsed)
	}

	if d, ok := timer.Get("resolve"); !ok {
		t.Error("resolve not found")
	} else if d < 10*time.Millisecond {
		t.Errorf("resolve should be >= 10ms, got %v", d)
	}

	if _, ok := timer.Get("missing"); ok {
		t.Error("missing mark should not be found")
	}
}

func TestTimer_Step(t *testing.T) {
	clock := &fakeClock{step: time.Millisecond}
	timer := newTimer(clock.now)

	timer.Mark("resolve") // 1ms
	clock.t = clock.t.Add(5 * time.Millisecond)
	timer.Mark("scan") // 7ms

	if d, _ := timer.Step("resolve"); d != time.Millisecond {
		t.Errorf("resolve step = %v, want 1ms", d)
	}
	if d, _ := timer.Step("scan"); d != 6*time.Millisecond {
		t.Errorf("scan step = %v, want 6ms", d)
	}
	if _, ok := timer.Step("nope"); ok {
		t.Error("unknown step should not be found")
	}
}

func TestTimer_MarkTwiceKeepsOrder(t *testing.T) {
	clock := &fakeClock{step: time.Millisecond}
	timer := newTimer(clock.now)

	timer.Mark("a")
	timer.Mark("b")
	timer.Mark("a")

	if len(timer.order) != 2 || timer.order[0] != "a" || timer.order[1] != "b" {
		t.Errorf("unexpected order %v", timer.order)
	}
}

func TestTimer_Summary(t *testing.T) {
	clock := &fakeClock{step: time.Millisecond}
	timer := newTimer(clock.now)

	timer.Mark("resolve")
	timer.Mark("scan")

	summary := timer.Summary()
	for _, want := range []string{"Total:", "resolve: 1.000ms", "scan: 1.000ms"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary should contain %q, got: %s", want, summary)
		}
	}
}

func TestTimer_SummaryNoMarks(t *testing.T) {
	timer := NewTimer()
	if summary := timer.Summary(); strings.Contains(summary, "(") {
		t.Errorf("Summary without marks should not list steps, got: %s", summary)
	}
}

func TestTimer_Log(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New("debug", buf)

	timer := NewTimer()
	timer.Mark("resolve")
	timer.Log(log, "Query timing")

	out := buf.String()
	if !strings.Contains(out, "Query timing") || !strings.Contains(out, "resolve=") || !strings.Contains(out, "total=") {
		t.Errorf("unexpected log output: %s", out)
	}

	// nil logger is a no-op
	timer.Log(nil, "ignored")
}

func TestTimer_Reset(t *testing.T) {
	timer := NewTimer()
	timer.Mark("a")
	timer.Reset()

	if _, ok := timer.Get("a"); ok {
		t.Error("marks should be cleared after reset")
	}
	if len(timer.order) != 0 {
		t.Error("order should be cleared after reset")
	}
}
