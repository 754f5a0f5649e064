package playback

import "time"

// StateChange is emitted when the controller changes state.
type StateChange struct {
	Previous State
	Current  State
}

// PositionChange is emitted when a seek is issued or deferred.
type PositionChange struct {
	Position time.Duration
	Deferred bool // stored for the next Resume, engine untouched
}

// ErrorEvent is emitted when the engine fails.
type ErrorEvent struct {
	Operation string // "load" or "seek"
	URL       string
	Err       error
}
