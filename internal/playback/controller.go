// internal/playback/controller.go
package playback

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/remoteplay/internal/clock"
	"github.com/llehouerou/remoteplay/internal/player"
)

const defaultRefreshInterval = 100 * time.Millisecond

// Dispatcher runs fn on the goroutine that owns the controller. Engine
// callbacks and timer ticks always go through it.
type Dispatcher func(fn func())

// Inline runs fn immediately on the calling goroutine.
func Inline(fn func()) { fn() }

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDispatcher sets how asynchronous events reach the controller.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) { c.dispatch = d }
}

// WithRefreshInterval sets the redraw timer period.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// Controller is the playback state machine for a single track.
//
// It is not safe for concurrent use: every method, including the On* event
// handlers, must be called from the same event loop. Asynchronous engine and
// timer events are routed through the Dispatcher.
type Controller struct {
	engine   player.Interface
	clock    clock.TimeSource
	dispatch Dispatcher
	log      *zap.Logger
	interval time.Duration

	state      State
	url        string
	duration   time.Duration
	hasDur     bool
	pausedAt   time.Duration
	hasPaused  bool
	lastIntent Intent

	// engineRunning tracks whether the engine is advancing.
	engineRunning bool
	// scrubRunning records engineRunning at BeginSeek.
	scrubRunning bool

	timer       clock.Handle
	timerActive bool

	seekSeq     uint64
	seekPending bool
	seekTarget  time.Duration
	display     Display

	subs   []*Subscription
	closed bool
}

// New creates a controller in the Idle state.
func New(engine player.Interface, ts clock.TimeSource, opts ...Option) *Controller {
	c := &Controller{
		engine:   engine,
		clock:    ts,
		dispatch: Inline,
		log:      zap.NewNop(),
		interval: defaultRefreshInterval,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Controls returns the control vector for the current state.
func (c *Controller) Controls() Controls {
	return DeriveControls(c.state, c.display)
}

// TrackDuration returns the duration reported by the engine, if any.
func (c *Controller) TrackDuration() (time.Duration, bool) {
	return c.duration, c.hasDur
}

// PausedAt returns the remembered pause position, if any.
func (c *Controller) PausedAt() (time.Duration, bool) {
	return c.pausedAt, c.hasPaused
}

// LastIntent returns the user action that last drove playback.
func (c *Controller) LastIntent() Intent { return c.lastIntent }

// TimerActive reports whether the redraw timer is running.
func (c *Controller) TimerActive() bool { return c.timerActive }

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

func (c *Controller) check(op Op) error {
	if c.closed {
		return ErrClosed
	}
	if !Allowed(op, c.state) {
		return &StateError{Op: op, State: c.state}
	}
	return nil
}

// StartPlayback loads url and starts playback once the engine is ready.
func (c *Controller) StartPlayback(url string) error {
	if err := c.check(OpStartPlayback); err != nil {
		return err
	}

	c.url = url
	c.duration, c.hasDur = 0, false
	c.pausedAt, c.hasPaused = 0, false
	c.seekPending = false
	c.display = Display{}
	c.lastIntent = IntentPlay

	c.engine.SetListener(&engineEvents{c: c})
	c.engine.Load(url)
	c.engine.Play()
	c.engineRunning = true

	c.log.Info("start playback", zap.String("url", url))
	c.enter(StateStarting)
	return nil
}

// OnEngineReady records the track duration and starts playing. Outside
// Starting it is ignored.
func (c *Controller) OnEngineReady(duration time.Duration) {
	if c.closed {
		return
	}
	if c.state != StateStarting {
		c.log.Warn("engine ready outside Starting, ignored",
			zap.Stringer("state", c.state),
			zap.Duration("duration", duration))
		return
	}

	c.duration, c.hasDur = duration, true
	c.log.Info("engine ready", zap.Duration("duration", duration))
	c.enter(StatePlaying)
}

// OnRateChanged tracks whether the engine is advancing. A drop to zero while
// Playing that the controller did not request pauses at the engine position.
func (c *Controller) OnRateChanged(rate float64) {
	if c.closed {
		return
	}
	running := rate > 0
	c.engineRunning = running

	if running || c.state != StatePlaying {
		return
	}

	pos := c.engine.Position()
	c.log.Info("engine stopped while playing", zap.Duration("position", pos))
	c.pausedAt, c.hasPaused = pos, true
	c.lastIntent = IntentPause
	c.display = displayAt(pos, c.duration)
	c.enter(StatePaused)
}

// OnEngineFailure handles a load or decode failure reported by the engine.
func (c *Controller) OnEngineFailure(err error) {
	if c.closed {
		return
	}
	if c.state == StateIdle {
		c.log.Warn("engine failure while idle, ignored", zap.Error(err))
		return
	}
	c.fail("load", err)
}

// Pause stops the engine and remembers the current position.
func (c *Controller) Pause() error {
	if err := c.check(OpPause); err != nil {
		return err
	}

	pos := c.engine.Position()
	c.pausedAt, c.hasPaused = pos, true
	c.lastIntent = IntentPause
	c.engineRunning = false
	c.display = displayAt(pos, c.duration)

	// Leave Playing first: the engine may report the rate drop synchronously.
	c.enter(StatePaused)
	c.engine.Pause()
	return nil
}

// Resume restarts the engine and seeks back to the paused position.
func (c *Controller) Resume() error {
	if err := c.check(OpResume); err != nil {
		return err
	}
	if c.state == StateTimeChanging && c.scrubRunning {
		return &StateError{Op: OpResume, State: c.state}
	}
	if !c.hasPaused {
		return ErrMissingPosition
	}

	c.lastIntent = IntentResume
	c.engine.Play()
	c.engineRunning = true
	c.enter(StatePlaying)
	c.issueSeek(c.pausedAt)
	return nil
}

// BeginSeek suspends redraws while the user drags the seek control.
func (c *Controller) BeginSeek() error {
	if err := c.check(OpBeginSeek); err != nil {
		return err
	}
	// enter keeps the timer running exactly while Playing, so the timer and
	// state always agree here.
	if c.state != StateTimeChanging {
		c.scrubRunning = c.engineRunning
	}
	c.enter(StateTimeChanging)
	return nil
}

// DragTo updates the displayed position while scrubbing.
func (c *Controller) DragTo(fraction float64) error {
	if err := c.check(OpDragTo); err != nil {
		return err
	}

	fraction = min(max(fraction, 0), 1)
	c.display.Position = fraction
	if c.hasDur {
		c.display.Text = FormatPosition(positionAt(fraction, c.duration))
	}
	c.emitControls()
	return nil
}

// CompleteSeek applies the scrubbed position. After a pause the target is
// stored for the next Resume; otherwise the engine seeks to it.
func (c *Controller) CompleteSeek(fraction float64) error {
	if err := c.check(OpCompleteSeek); err != nil {
		return err
	}
	if !c.hasDur {
		return ErrMissingDuration
	}

	target := positionAt(fraction, c.duration)
	c.display = displayAt(target, c.duration)

	if c.lastIntent == IntentPause {
		c.pausedAt, c.hasPaused = target, true
		c.log.Debug("seek deferred until resume", zap.Duration("target", target))
		c.publishPosition(PositionChange{Position: target, Deferred: true})
		c.enter(StatePaused)
		return nil
	}

	c.issueSeek(target)
	return nil
}

// CancelSeek abandons a scrub without seeking.
func (c *Controller) CancelSeek() error {
	if err := c.check(OpCancelSeek); err != nil {
		return err
	}

	if c.engineRunning {
		c.enter(StatePlaying)
		return nil
	}
	if c.lastIntent != IntentPause {
		// The engine stopped during the scrub; pausedAt may predate it.
		if pos, ok := c.knownPosition(); ok {
			c.pausedAt, c.hasPaused = pos, true
		}
		c.lastIntent = IntentPause
	}
	c.display = displayAt(c.pausedAt, c.duration)
	c.enter(StatePaused)
	return nil
}

// SetVolume forwards level to the engine. The engine clamps it to [0, 1].
func (c *Controller) SetVolume(level float64) error {
	if err := c.check(OpSetVolume); err != nil {
		return err
	}
	c.engine.SetVolume(level)
	return nil
}

// Tick refreshes the live position. Ticks outside Playing are stale and ignored.
func (c *Controller) Tick() {
	if c.closed || c.state != StatePlaying {
		return
	}
	c.refreshPosition()
	c.emitControls()
}

// Teardown stops the engine if it is playing, cancels the redraw timer and
// stops observing the engine. Calling it again has no effect.
func (c *Controller) Teardown() {
	if c.closed {
		return
	}
	c.engine.SetListener(nil)
	if c.state == StatePlaying || c.engineRunning {
		c.engine.Pause()
		c.engineRunning = false
	}
	c.stopTimer()
	// Leaving Playing here would otherwise look like a pause to subscribers.
	prev := c.state
	c.state = StateIdle
	c.closed = true

	c.log.Info("teardown", zap.Stringer("from", prev))
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
}

func (c *Controller) issueSeek(target time.Duration) {
	c.seekSeq++
	seq := c.seekSeq
	c.seekPending, c.seekTarget = true, target
	c.enter(StateSeeking)
	c.publishPosition(PositionChange{Position: target})
	c.log.Debug("seek issued", zap.Duration("target", target), zap.Uint64("seq", seq))

	c.engine.Seek(target, func(ok bool) {
		c.dispatch(func() { c.onSeekComplete(seq, ok) })
	})
}

func (c *Controller) onSeekComplete(seq uint64, ok bool) {
	if c.closed {
		return
	}
	if seq != c.seekSeq {
		c.log.Debug("stale seek completion ignored",
			zap.Uint64("seq", seq),
			zap.Uint64("current", c.seekSeq))
		return
	}
	if c.state != StateSeeking {
		// Superseded by a scrub; only the engine position changed.
		c.seekPending = false
		c.log.Debug("seek landed outside Seeking",
			zap.Stringer("state", c.state),
			zap.Bool("ok", ok))
		return
	}
	if !ok {
		c.fail("seek", errSeekFailed)
		return
	}
	c.seekPending = false

	if c.seekTarget >= c.duration {
		c.pauseAtEnd()
		return
	}
	if !c.engineRunning {
		c.engine.Play()
		c.engineRunning = true
	}
	c.enter(StatePlaying)
}

// pauseAtEnd parks a seek that landed on the end of the track. Nothing is
// left to play, so it pauses there whatever the engine reported meanwhile.
func (c *Controller) pauseAtEnd() {
	c.log.Info("seek reached end of track", zap.Duration("duration", c.duration))
	running := c.engineRunning
	c.pausedAt, c.hasPaused = c.duration, true
	c.lastIntent = IntentPause
	c.engineRunning = false
	c.display = displayAt(c.duration, c.duration)
	c.enter(StatePaused)
	if running {
		c.engine.Pause()
	}
}

// fail reports an engine failure and falls back to Paused when a position is
// known, Idle otherwise.
func (c *Controller) fail(op string, err error) {
	wrapped := fmt.Errorf("%w: %w", ErrEngineFailure, err)
	c.log.Error("engine failure",
		zap.String("op", op),
		zap.String("url", c.url),
		zap.Stringer("state", c.state),
		zap.Error(err))
	for _, sub := range c.subs {
		sub.sendError(ErrorEvent{Operation: op, URL: c.url, Err: wrapped})
	}

	pos, known := c.knownPosition()
	running := c.engineRunning
	c.engineRunning = false
	c.seekPending = false

	if known {
		c.pausedAt, c.hasPaused = pos, true
		c.lastIntent = IntentPause
		c.display = displayAt(pos, c.duration)
		c.enter(StatePaused)
	} else {
		c.engine.SetListener(nil)
		c.duration, c.hasDur = 0, false
		c.pausedAt, c.hasPaused = 0, false
		c.lastIntent = IntentNone
		c.display = Display{}
		c.enter(StateIdle)
	}
	if running {
		c.engine.Pause()
	}
}

func (c *Controller) knownPosition() (time.Duration, bool) {
	if c.seekPending && c.lastIntent == IntentResume {
		// The resume seek has not landed; the engine position is stale.
		return c.pausedAt, true
	}
	if c.hasDur {
		return c.engine.Position(), true
	}
	if c.hasPaused {
		return c.pausedAt, true
	}
	return 0, false
}

// enter performs every state change. It keeps the redraw timer running
// exactly while Playing and publishes the change.
func (c *Controller) enter(next State) {
	prev := c.state
	c.state = next

	if next == StatePlaying {
		c.startTimer()
		c.refreshPosition()
	} else {
		c.stopTimer()
	}

	if prev != next {
		c.log.Debug("state change", zap.Stringer("from", prev), zap.Stringer("to", next))
		for _, sub := range c.subs {
			sub.sendState(StateChange{Previous: prev, Current: next})
		}
	}
	c.emitControls()
}

func (c *Controller) startTimer() {
	c.stopTimer()
	c.timer = c.clock.ScheduleRepeating(c.interval, func() {
		c.dispatch(c.Tick)
	})
	c.timerActive = true
}

func (c *Controller) stopTimer() {
	if !c.timerActive {
		return
	}
	c.clock.Cancel(c.timer)
	c.timer = 0
	c.timerActive = false
}

func (c *Controller) refreshPosition() {
	if !c.hasDur {
		return
	}
	c.display = displayAt(c.engine.Position(), c.duration)
}

func (c *Controller) emitControls() {
	controls := c.Controls()
	for _, sub := range c.subs {
		sub.sendControls(controls)
	}
}

func (c *Controller) publishPosition(e PositionChange) {
	for _, sub := range c.subs {
		sub.sendPosition(e)
	}
}

// engineEvents moves engine callbacks onto the controller's event loop.
type engineEvents struct {
	c *Controller
}

func (e *engineEvents) OnReady(d time.Duration) {
	e.c.dispatch(func() { e.c.OnEngineReady(d) })
}

func (e *engineEvents) OnRateChanged(rate float64) {
	e.c.dispatch(func() { e.c.OnRateChanged(rate) })
}

func (e *engineEvents) OnFailure(err error) {
	e.c.dispatch(func() { e.c.OnEngineFailure(err) })
}
