// internal/app/app_test.go
package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/llehouerou/remoteplay/internal/clock"
	"github.com/llehouerou/remoteplay/internal/config"
	"github.com/llehouerou/remoteplay/internal/playback"
	"github.com/llehouerou/remoteplay/internal/player"
)

const testURL = "http://example.com/track.mp3"

type testEnv struct {
	m      Model
	engine *player.Mock
	clock  *clock.Manual
	logs   *observer.ObservedLogs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	engine := player.NewMock()
	ts := clock.NewManual()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	m := New(Options{
		Playback: playback.New(engine, ts, playback.WithLogger(log)),
		Muter:    engine,
		Log:      log,
		Stream: config.StreamConfig{
			URL:        testURL,
			Volume:     0.5,
			VolumeStep: 0.1,
			ScrubStep:  0.25,
		},
	})
	return &testEnv{m: m, engine: engine, clock: ts, logs: logs}
}

func (e *testEnv) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := e.m.Update(msg)
	m, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	e.m = m
	return cmd
}

func (e *testEnv) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		e.send(t, keyMsg(k))
	}
}

// playing starts playback of a 120s track.
func (e *testEnv) playing(t *testing.T) {
	t.Helper()
	e.send(t, StartMsg{})
	e.engine.EmitReady(120 * time.Second)
	require.Equal(t, playback.StatePlaying, e.m.Playback.State())
}

// pump delivers every queued controller event to the model and returns them.
func (e *testEnv) pump(t *testing.T) []tea.Msg {
	t.Helper()
	var msgs []tea.Msg
	for e.pending() > 0 {
		msg := e.m.WatchEvents()()
		msgs = append(msgs, msg)
		e.send(t, msg)
	}
	return msgs
}

func (e *testEnv) pending() int {
	s := e.m.sub
	return len(s.StateChanged) + len(s.ControlsChanged) + len(s.PositionChanged) + len(s.Error)
}

// assertNoRejections checks that no operation hit the transition table.
func (e *testEnv) assertNoRejections(t *testing.T) {
	t.Helper()
	assert.Zero(t, e.logs.FilterLevelExact(zapcore.DPanicLevel).Len())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	e := newTestEnv(t)

	e.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, e.m.Width)
	assert.Equal(t, 40, e.m.Height)
}

func TestUpdate_StartMsg_LoadsURL(t *testing.T) {
	e := newTestEnv(t)

	e.send(t, StartMsg{})

	assert.Equal(t, playback.StateStarting, e.m.Playback.State())
	assert.Equal(t, []string{testURL}, e.engine.LoadCalls())
}

func TestUpdate_CallbackMsg_RunsOnLoop(t *testing.T) {
	e := newTestEnv(t)
	ran := false

	e.send(t, CallbackMsg(func() { ran = true }))

	assert.True(t, ran)
}

func TestKeys_PauseResume(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)
	e.engine.SetPosition(30 * time.Second)

	e.press(t, " ")
	assert.Equal(t, playback.StatePaused, e.m.Playback.State())

	e.press(t, " ")
	assert.Equal(t, playback.StateSeeking, e.m.Playback.State())
	require.Len(t, e.engine.Seeks(), 1)
	assert.Equal(t, 30*time.Second, e.engine.Seeks()[0].To)

	// Busy: space is ignored rather than rejected
	e.press(t, " ")
	assert.Equal(t, playback.StateSeeking, e.m.Playback.State())

	e.engine.CompleteSeek(true)
	assert.Equal(t, playback.StatePlaying, e.m.Playback.State())
	e.assertNoRejections(t)
}

func TestKeys_DisabledControlsAreIgnored(t *testing.T) {
	e := newTestEnv(t)

	// Idle: nothing but play is enabled
	e.press(t, " ", "+", "right", "enter", "esc")
	assert.Equal(t, playback.StateIdle, e.m.Playback.State())
	assert.InDelta(t, 1.0, e.engine.Volume(), 1e-9)

	e.playing(t)
	e.press(t, "p")
	assert.Len(t, e.engine.LoadCalls(), 1)
	e.assertNoRejections(t)
}

func TestKeys_ScrubAndCommit(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)

	e.press(t, "right", "right")
	assert.Equal(t, playback.StateTimeChanging, e.m.Playback.State())
	assert.InDelta(t, 0.5, e.m.Scrub, 1e-9)
	assert.Equal(t, "00:01:00", e.m.Playback.Controls().TimeText)

	e.press(t, "left")
	assert.InDelta(t, 0.25, e.m.Scrub, 1e-9)

	e.press(t, "enter")
	assert.Equal(t, playback.StateSeeking, e.m.Playback.State())
	require.Len(t, e.engine.Seeks(), 1)
	assert.Equal(t, 30*time.Second, e.engine.Seeks()[0].To)

	e.engine.CompleteSeek(true)
	assert.Equal(t, playback.StatePlaying, e.m.Playback.State())
	e.assertNoRejections(t)
}

func TestKeys_ScrubClamps(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)

	e.press(t, "left", "left")

	assert.InDelta(t, 0, e.m.Scrub, 1e-9)
}

func TestKeys_ScrubCancel(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)

	e.press(t, "right", "esc")

	assert.Equal(t, playback.StatePlaying, e.m.Playback.State())
	assert.Empty(t, e.engine.Seeks())
	e.assertNoRejections(t)
}

func TestKeys_ScrubWhilePausedDefersSeek(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)
	e.press(t, " ")

	e.press(t, "right", "enter")

	assert.Equal(t, playback.StatePaused, e.m.Playback.State())
	assert.Empty(t, e.engine.Seeks())
	at, ok := e.m.Playback.PausedAt()
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, at)
	e.assertNoRejections(t)
}

func TestKeys_Volume(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)

	e.press(t, "+")
	assert.InDelta(t, 0.6, e.engine.Volume(), 1e-9)

	e.press(t, "-", "-", "-", "-", "-", "-", "-")
	assert.InDelta(t, 0, e.m.Volume, 1e-9)
	assert.InDelta(t, 0, e.engine.Volume(), 1e-9)
}

func TestKeys_ToggleMute(t *testing.T) {
	e := newTestEnv(t)

	e.press(t, "m")
	assert.True(t, e.engine.Muted())
	e.press(t, "m")
	assert.False(t, e.engine.Muted())
}

func TestKeys_Quit(t *testing.T) {
	e := newTestEnv(t)
	e.playing(t)

	cmd := e.send(t, keyMsg("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, playback.StateIdle, e.m.Playback.State())
	assert.False(t, e.engine.Running())
	assert.False(t, e.m.Playback.TimerActive())
	assert.Zero(t, e.clock.Active())
}

func TestEngineError_ShowsMessageUntilKey(t *testing.T) {
	e := newTestEnv(t)

	e.send(t, EngineErrorMsg{
		Operation: "load",
		URL:       testURL,
		Err:       errors.New("unexpected status 404 Not Found"),
	})

	assert.Equal(t, "Failed to load stream '"+testURL+"': unexpected status 404 Not Found", e.m.ErrorMsg)

	e.press(t, "x")
	assert.Empty(t, e.m.ErrorMsg)
}

func TestWatchEvents(t *testing.T) {
	e := newTestEnv(t)
	e.send(t, StartMsg{})

	msgs := e.pump(t)

	assert.Contains(t, msgs, StateChangedMsg{Previous: playback.StateIdle, Current: playback.StateStarting})
	assert.Equal(t, playback.StateStarting, e.m.Controls.State)
	assert.True(t, e.m.Controls.BusyVisible)
}

func TestWatchEvents_LoadFailure(t *testing.T) {
	e := newTestEnv(t)
	e.send(t, StartMsg{})
	e.engine.EmitFailure(errors.New("connection refused"))

	var got EngineErrorMsg
	for _, msg := range e.pump(t) {
		if m, ok := msg.(EngineErrorMsg); ok {
			got = m
		}
	}

	assert.Equal(t, "load", got.Operation)
	assert.ErrorIs(t, got.Err, playback.ErrEngineFailure)
	assert.Equal(t, playback.StateIdle, e.m.Controls.State)
	assert.NotEmpty(t, e.m.ErrorMsg)
}

func TestControlsChanged_RedrawsPosition(t *testing.T) {
	e := newTestEnv(t)
	e.send(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	e.playing(t)
	e.pump(t)
	require.Equal(t, playback.StatePlaying, e.m.Controls.State)

	e.engine.SetPosition(time.Minute)
	e.clock.Fire()
	assert.NotContains(t, e.m.View(), "00:01:00", "view waits for the published controls")

	e.pump(t)

	assert.Equal(t, "00:01:00", e.m.Controls.TimeText)
	assert.Contains(t, e.m.View(), "00:01:00")
}

func TestStateChanged_StartsSpinnerWhenBusy(t *testing.T) {
	e := newTestEnv(t)

	cmd := e.send(t, StateChangedMsg{Previous: playback.StateIdle, Current: playback.StateStarting})
	assert.NotNil(t, cmd)
	assert.True(t, e.m.spinning)

	e.send(t, StateChangedMsg{Previous: playback.StateStarting, Current: playback.StatePlaying})
	assert.True(t, e.m.spinning, "spinner stops on its next tick")
}

func TestView(t *testing.T) {
	e := newTestEnv(t)
	assert.Empty(t, e.m.View())

	e.send(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	e.playing(t)
	e.pump(t)

	view := e.m.View()
	assert.Contains(t, view, testURL)
	assert.Contains(t, view, "00:02:00")
}

func TestHints(t *testing.T) {
	e := newTestEnv(t)

	idle := e.m.hints(e.m.Playback.Controls())
	require.NotEmpty(t, idle)
	assert.Equal(t, "p", idle[0].Key)
	assert.True(t, idle[0].Enabled)
	assert.False(t, idle[1].Enabled)

	e.playing(t)
	e.press(t, "right")
	scrub := e.m.hints(e.m.Playback.Controls())
	var keys []string
	for _, h := range scrub {
		keys = append(keys, h.Key)
	}
	assert.Contains(t, keys, "enter")
	assert.Contains(t, keys, "esc")
}

func TestDispatcher_NilProgram(t *testing.T) {
	d := Dispatcher(func() *tea.Program { return nil })

	assert.NotPanics(t, func() { d(func() {}) })
}
