package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when an operation is invoked from a state
	// that does not allow it. It always indicates a UI wiring bug.
	ErrInvalidState = errors.New("invalid playback state")
	// ErrMissingPosition is returned by Resume when no pause position is known.
	ErrMissingPosition = errors.New("no paused position")
	// ErrMissingDuration is returned by CompleteSeek before the engine was ready.
	ErrMissingDuration = errors.New("track duration unknown")
	// ErrEngineFailure wraps failures reported by the media engine.
	ErrEngineFailure = errors.New("engine failure")
	// ErrClosed is returned by every operation after Teardown.
	ErrClosed = errors.New("controller closed")

	errSeekFailed = errors.New("seek failed")
)

// StateError reports an operation rejected by the transition table.
type StateError struct {
	Op    Op
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}
