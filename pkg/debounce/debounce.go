// Package debounce provides a cancel-and-restart scheduled task handle.
//
// A Debouncer holds at most one pending task. Scheduling a new task cancels the
// pending one, so only the last task of a burst runs. Used by the dataset
// watcher (coalescing file events) and by the preview hover state machine
// (show/hide delays).
package debounce

import (
	"sync"
	"time"
)

// DefaultDuration is the delay used by Trigger when none was configured.
const DefaultDuration = 200 * time.Millisecond

// Debouncer runs the most recently scheduled function after its delay.
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
	gen      uint64
	pending  bool
}

// New creates a Debouncer whose Trigger waits d.
func New(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Debouncer{duration: d}
}

// Trigger schedules fn after the default duration.
func (d *Debouncer) Trigger(fn func()) {
	d.TriggerAfter(d.duration, fn)
}

// TriggerAfter cancels any pending task and schedules fn after delay.
func (d *Debouncer) TriggerAfter(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// A newer schedule or a Cancel raced with this timer firing.
		if gen != d.gen || !d.pending {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending task, if any, and reports whether one was dropped.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	was := d.pending
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	return was
}

// Pending reports whether a task is scheduled and has not run yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Duration returns the default delay.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
