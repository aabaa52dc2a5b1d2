// Package querysync keeps filter criteria and the page's query string
// eventually consistent. Edits recompute the visible list at once; the
// query string follows after a quiet period.
package querysync

import (
	"sync"
	"time"
)

// Timer is a pending deferred call
type Timer interface {
	Stop() bool
}

// Clock schedules deferred calls. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock runs tasks on the runtime timer
var RealClock Clock = realClock{}

// Debouncer runs the most recently scheduled task once no new task has
// been scheduled for the whole window.
type Debouncer struct {
	mu     sync.Mutex
	clock  Clock
	window time.Duration
	timer  Timer
	gen    uint64
}

// NewDebouncer creates a debouncer. A nil clock means RealClock.
func NewDebouncer(clock Clock, window time.Duration) *Debouncer {
	if clock == nil {
		clock = RealClock
	}
	return &Debouncer{clock: clock, window: window}
}

// Window returns the quiet period
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Schedule replaces any pending task with task and restarts the window
func (d *Debouncer) Schedule(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A timer that lost the race with Stop must not run a stale task.
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		task()
	})
}

// Cancel drops the pending task and reports whether there was one
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

// Pending reports whether a task is waiting to run
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() bool {
	d.gen++
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	return true
}
