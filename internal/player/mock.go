// internal/player/mock.go
package player

import "time"

// Mock is a test double for Player. Events are delivered synchronously by the
// Emit helpers and seeks complete only when CompleteSeek is called. With
// EchoRate, Play and Pause also report rate changes as Player does.
type Mock struct {
	listener Listener
	echoRate bool
	running  bool
	position time.Duration
	volume   float64
	muted    bool
	closed   int

	loadCalls  []string
	playCalls  int
	pauseCalls int
	seeks      []MockSeek
}

// MockSeek records a Seek call.
type MockSeek struct {
	To         time.Duration
	OnComplete func(ok bool)
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{volume: 1}
}

func (m *Mock) SetListener(l Listener) { m.listener = l }

func (m *Mock) Load(url string) {
	m.loadCalls = append(m.loadCalls, url)
	m.running = false
	m.position = 0
}

func (m *Mock) Play() {
	m.playCalls++
	if m.running {
		return
	}
	m.running = true
	m.echo(1)
}

func (m *Mock) Pause() {
	m.pauseCalls++
	if !m.running {
		return
	}
	m.running = false
	m.echo(0)
}

func (m *Mock) echo(rate float64) {
	if m.echoRate && m.listener != nil {
		m.listener.OnRateChanged(rate)
	}
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Seek(to time.Duration, onComplete func(ok bool)) {
	m.seeks = append(m.seeks, MockSeek{To: to, OnComplete: onComplete})
}

func (m *Mock) SetVolume(level float64) { m.volume = min(max(level, 0), 1) }

func (m *Mock) SetMuted(muted bool) { m.muted = muted }

func (m *Mock) Muted() bool { return m.muted }

func (m *Mock) Close() error {
	m.closed++
	return nil
}

// Test helpers

// EchoRate sets whether Play and Pause report their rate change to the
// listener.
func (m *Mock) EchoRate(on bool) { m.echoRate = on }

func (m *Mock) Listener() Listener { return m.listener }

func (m *Mock) Running() bool { return m.running }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) Seeks() []MockSeek { return m.seeks }

func (m *Mock) CloseCalls() int { return m.closed }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

// EmitReady simulates the engine finishing the load.
func (m *Mock) EmitReady(d time.Duration) {
	if m.listener != nil {
		m.listener.OnReady(d)
	}
}

// EmitRate simulates a playback rate change.
func (m *Mock) EmitRate(rate float64) {
	m.running = rate > 0
	if m.listener != nil {
		m.listener.OnRateChanged(rate)
	}
}

// EmitFailure simulates a load failure.
func (m *Mock) EmitFailure(err error) {
	if m.listener != nil {
		m.listener.OnFailure(err)
	}
}

// CompleteSeek completes the oldest pending seek. On success the position
// moves to the seek target. Returns false if no seek is pending.
func (m *Mock) CompleteSeek(ok bool) bool {
	return m.CompleteSeekAt(0, ok)
}

// CompleteSeekAt completes the pending seek at index i.
func (m *Mock) CompleteSeekAt(i int, ok bool) bool {
	if i < 0 || i >= len(m.seeks) {
		return false
	}
	s := m.seeks[i]
	m.seeks = append(m.seeks[:i], m.seeks[i+1:]...)
	if ok {
		m.position = s.To
	}
	if s.OnComplete != nil {
		s.OnComplete(ok)
	}
	return true
}

// Verify Mock implements Interface at compile time.
var (
	_ Interface = (*Mock)(nil)
	_ Muter     = (*Mock)(nil)
)
