package utils

import (
	"sync"
	"time"
)

// Debouncer delays fn until wait has elapsed without another Trigger.
// Every Trigger cancels the pending invocation.
type Debouncer struct {
	fn   func()
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// Debounce returns a Debouncer for fn
func Debounce(fn func(), wait time.Duration) *Debouncer {
	return &Debouncer{fn: fn, wait: wait}
}

// Trigger schedules fn, replacing any pending call
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, d.fn)
}

// Stop cancels a pending call. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
