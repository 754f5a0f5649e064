// Package clock provides repeating timers that can be cancelled by handle.
package clock

import (
	"sync"
	"time"
)

// Handle identifies a scheduled timer. The zero Handle is never issued.
type Handle uint64

// TimeSource schedules repeating callbacks.
type TimeSource interface {
	// ScheduleRepeating calls fn every interval until the handle is cancelled.
	ScheduleRepeating(interval time.Duration, fn func()) Handle
	// Cancel stops the timer. Unknown or already cancelled handles are ignored.
	Cancel(h Handle)
}

// Ticker is a TimeSource backed by time.Ticker. Callbacks run on a goroutine
// per timer.
type Ticker struct {
	mu    sync.Mutex
	last  Handle
	stops map[Handle]chan struct{}
}

// NewTicker creates a Ticker with no active timers.
func NewTicker() *Ticker {
	return &Ticker{stops: make(map[Handle]chan struct{})}
}

// ScheduleRepeating starts a new timer.
func (t *Ticker) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	t.mu.Lock()
	t.last++
	h := t.last
	stop := make(chan struct{})
	t.stops[h] = stop
	t.mu.Unlock()

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// Cancel may race with a pending tick; prefer the stop.
				select {
				case <-stop:
					return
				default:
				}
				fn()
			case <-stop:
				return
			}
		}
	}()
	return h
}

// Cancel stops the timer identified by h.
func (t *Ticker) Cancel(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if stop, ok := t.stops[h]; ok {
		close(stop)
		delete(t.stops, h)
	}
}

// Active returns the number of running timers.
func (t *Ticker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stops)
}

// Verify Ticker implements TimeSource at compile time.
var _ TimeSource = (*Ticker)(nil)
