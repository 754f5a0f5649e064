package clock

import (
	"slices"
	"time"
)

// Manual is a TimeSource for tests. Timers fire only when Fire is called.
type Manual struct {
	last      Handle
	timers    map[Handle]manualTimer
	scheduled int
	cancelled int
}

type manualTimer struct {
	interval time.Duration
	fn       func()
}

// NewManual creates a Manual with no active timers.
func NewManual() *Manual {
	return &Manual{timers: make(map[Handle]manualTimer)}
}

func (m *Manual) ScheduleRepeating(interval time.Duration, fn func()) Handle {
	m.last++
	m.timers[m.last] = manualTimer{interval: interval, fn: fn}
	m.scheduled++
	return m.last
}

func (m *Manual) Cancel(h Handle) {
	if _, ok := m.timers[h]; ok {
		delete(m.timers, h)
		m.cancelled++
	}
}

// Fire runs one tick of every active timer, in scheduling order.
func (m *Manual) Fire() {
	handles := make([]Handle, 0, len(m.timers))
	for h := range m.timers {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	for _, h := range handles {
		// A callback may cancel other timers.
		if t, ok := m.timers[h]; ok {
			t.fn()
		}
	}
}

// Active returns the number of running timers.
func (m *Manual) Active() int { return len(m.timers) }

// Scheduled returns how many timers were ever started.
func (m *Manual) Scheduled() int { return m.scheduled }

// Cancelled returns how many timers were cancelled.
func (m *Manual) Cancelled() int { return m.cancelled }

// Interval returns the interval of an active timer.
func (m *Manual) Interval(h Handle) (time.Duration, bool) {
	t, ok := m.timers[h]
	return t.interval, ok
}

// Verify Manual implements TimeSource at compile time.
var _ TimeSource = (*Manual)(nil)
