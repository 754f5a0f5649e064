package playback

// eventBufferSize bounds each channel. A subscriber that falls further behind
// misses events rather than stalling the controller.
const eventBufferSize = 16

// Subscription delivers controller events. Done closes on teardown.
type Subscription struct {
	StateChanged    <-chan StateChange
	ControlsChanged <-chan Controls
	PositionChanged <-chan PositionChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	state    chan StateChange
	controls chan Controls
	position chan PositionChange
	errs     chan ErrorEvent
	done     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    make(chan StateChange, eventBufferSize),
		controls: make(chan Controls, eventBufferSize),
		position: make(chan PositionChange, eventBufferSize),
		errs:     make(chan ErrorEvent, eventBufferSize),
		done:     make(chan struct{}),
	}
	s.StateChanged = s.state
	s.ControlsChanged = s.controls
	s.PositionChanged = s.position
	s.Error = s.errs
	s.Done = s.done
	return s
}

func (s *Subscription) close() { close(s.done) }

// offer sends v on ch unless the buffer is full.
func offer[T any](ch chan<- T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)       { offer(s.state, e) }
func (s *Subscription) sendControls(c Controls)       { offer(s.controls, c) }
func (s *Subscription) sendPosition(e PositionChange) { offer(s.position, e) }
func (s *Subscription) sendError(e ErrorEvent)        { offer(s.errs, e) }
