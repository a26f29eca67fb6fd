// Package timing measures the phases of a completion query.
package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/NikitaCOEUR/hdrcomp/internal/logger"
)

// Timer records named checkpoints relative to its start
type Timer struct {
	start time.Time
	marks map[string]time.Duration
	order []string
	now   func() time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	return &Timer{
		start: now(),
		marks: make(map[string]time.Duration),
		now:   now,
	}
}

// Mark records a checkpoint with a label. Marking a label twice keeps its
// position and updates the duration.
func (t *Timer) Mark(label string) time.Duration {
	elapsed := t.now().Sub(t.start)
	if _, seen := t.marks[label]; !seen {
		t.order = append(t.order, label)
	}
	t.marks[label] = elapsed
	return elapsed
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the duration for a specific mark
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.marks[label]
	return d, ok
}

// Step returns the time spent between the previous mark and label
func (t *Timer) Step(label string) (time.Duration, bool) {
	var prev time.Duration
	for _, l := range t.order {
		if l == label {
			return t.marks[l] - prev, true
		}
		prev = t.marks[l]
	}
	return 0, false
}

// Summary returns a formatted summary of all timings
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s", millis(t.Elapsed()))

	if len(t.order) > 0 {
		b.WriteString(" (")
		for i, label := range t.order {
			if i > 0 {
				b.WriteString(", ")
			}
			step, _ := t.Step(label)
			fmt.Fprintf(&b, "%s: %s", label, millis(step))
		}
		b.WriteString(")")
	}

	return b.String()
}

// Log writes the per-step durations as one debug entry
func (t *Timer) Log(log *logger.Logger, msg string) {
	if log == nil {
		return
	}
	entry := log.Debug()
	for _, label := range t.order {
		step, _ := t.Step(label)
		entry = entry.Dur(label, step)
	}
	entry.Dur("total", t.Elapsed()).Msg(msg)
}

// Reset resets the timer
func (t *Timer) Reset() {
	t.start = t.now()
	t.marks = make(map[string]time.Duration)
	t.order = nil
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
