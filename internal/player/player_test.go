package player

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chanListener struct {
	failures chan error
}

func (c *chanListener) OnReady(time.Duration) {}
func (c *chanListener) OnRateChanged(float64) {}
func (c *chanListener) OnFailure(err error)   { c.failures <- err }

type rateListener struct {
	rates chan float64
}

func (r *rateListener) OnReady(time.Duration)      {}
func (r *rateListener) OnRateChanged(rate float64) { r.rates <- rate }
func (r *rateListener) OnFailure(error)            {}

// silentStream is a seekable stream that yields no samples.
type silentStream struct {
	pos, n int
}

func (s *silentStream) Stream([][2]float64) (int, bool) { return 0, false }
func (s *silentStream) Err() error                      { return nil }
func (s *silentStream) Len() int                        { return s.n }
func (s *silentStream) Position() int                   { return s.pos }
func (s *silentStream) Seek(p int) error                { s.pos = p; return nil }
func (s *silentStream) Close() error                    { return nil }

// endedPlayer returns a player whose stream ran out at its last sample.
func endedPlayer(t *testing.T) (*Player, *rateListener) {
	t.Helper()
	p := newTestPlayer(t)
	l := &rateListener{rates: make(chan float64, 4)}
	p.SetListener(l)

	rate := beep.SampleRate(44100)
	s := &silentStream{n: rate.N(2 * time.Minute)}
	s.pos = s.n
	p.mu.Lock()
	p.status = Ready
	p.format = beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	p.streamer = s
	p.ctrl = &beep.Ctrl{Streamer: s}
	p.volume = p.newVolumeLocked(p.ctrl)
	p.ended = true
	p.mu.Unlock()
	return p, l
}

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	// Load goroutines may outlive the test body, so no zaptest here.
	log := zap.NewNop()
	p := New(NewFetcher(testFetchConfig(), log), log)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPlayer_LoadFailureReportsToListener(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := newTestPlayer(t)
	l := &chanListener{failures: make(chan error, 1)}
	p.SetListener(l)

	p.Load(srv.URL + "/missing.mp3")

	select {
	case err := <-l.failures:
		assert.Contains(t, err.Error(), "missing.mp3")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for failure")
	}
	assert.Equal(t, Failed, p.Status())
}

func TestPlayer_DecodeFailureReportsToListener(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not audio"))
	}))
	defer srv.Close()

	p := newTestPlayer(t)
	l := &chanListener{failures: make(chan error, 1)}
	p.SetListener(l)

	p.Load(srv.URL)

	select {
	case err := <-l.failures:
		assert.Contains(t, err.Error(), "decode")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for failure")
	}
}

func TestPlayer_PlayBeforeReadyIsRemembered(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	p := newTestPlayer(t)
	p.Load(srv.URL)
	p.Play()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, Loading, p.status)
	assert.True(t, p.wantPlay)
}

func TestPlayer_NoStreamIsInert(t *testing.T) {
	p := newTestPlayer(t)

	p.Play()
	p.Pause()

	assert.Equal(t, time.Duration(0), p.Position())
	assert.Equal(t, Empty, p.Status())
}

func TestPlayer_SeekWithoutStreamFails(t *testing.T) {
	p := newTestPlayer(t)
	done := make(chan bool, 1)

	p.Seek(10*time.Second, func(ok bool) { done <- ok })

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for seek completion")
	}
}

func TestPlayer_CloseIsIdempotent(t *testing.T) {
	p := newTestPlayer(t)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, Closed, p.Status())
}

func TestPlayer_LoadAfterCloseFails(t *testing.T) {
	p := New(NewFetcher(testFetchConfig(), nil), nil)
	require.NoError(t, p.Close())

	p.Load("http://127.0.0.1:1/never.mp3")

	assert.Equal(t, Closed, p.Status())
}

func TestPlayer_PlayAtEndOfStreamWaitsForSeek(t *testing.T) {
	p, l := endedPlayer(t)

	p.Play()

	assert.Equal(t, 2*time.Minute, p.Position(), "no rewind")
	p.mu.Lock()
	assert.True(t, p.wantPlay)
	assert.True(t, p.ended)
	p.mu.Unlock()
	assert.Empty(t, l.rates)

	// Seeking onto the end keeps the stream parked.
	require.True(t, p.doSeek(2*time.Minute))
	p.mu.Lock()
	assert.True(t, p.ended)
	p.mu.Unlock()

	require.True(t, p.doSeek(30*time.Second))

	p.mu.Lock()
	assert.False(t, p.ended)
	assert.False(t, p.wantPlay)
	assert.False(t, p.ctrl.Paused)
	p.mu.Unlock()
	assert.Equal(t, 30*time.Second, p.Position())
	select {
	case rate := <-l.rates:
		assert.InDelta(t, 1.0, rate, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for rate change")
	}
}

func TestPlayer_PauseCancelsDeferredPlay(t *testing.T) {
	p, l := endedPlayer(t)
	p.Play()

	p.Pause()
	require.True(t, p.doSeek(30*time.Second))

	p.mu.Lock()
	assert.True(t, p.ended)
	assert.False(t, p.wantPlay)
	p.mu.Unlock()
	assert.Empty(t, l.rates)
}
