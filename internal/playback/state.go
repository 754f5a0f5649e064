// internal/playback/state.go
package playback

// State represents the controller's playback state.
//
//	┌──────┐ StartPlayback ┌──────────┐ ready ┌─────────┐  Pause  ┌────────┐
//	│ Idle │──────────────▶│ Starting │──────▶│ Playing │────────▶│ Paused │
//	└──────┘               └──────────┘       └─────────┘         └────────┘
//	                                            │  ▲  ▲              │   │
//	                                  BeginSeek │  │  │ seek done    │   │ Resume
//	                                            ▼  │  │              │   ▼
//	                                   ┌──────────────┐ CompleteSeek ┌─────────┐
//	                                   │ TimeChanging │─────────────▶│ Seeking │
//	                                   └──────────────┘              └─────────┘
//
// Paused and Seeking may also enter TimeChanging. A CompleteSeek scrubbed
// from a pause stores the target and returns to Paused without seeking.
type State int

const (
	StateIdle State = iota
	StateStarting
	StatePlaying
	StatePaused
	StateTimeChanging
	StateSeeking
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateStarting:
		return "Starting"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateTimeChanging:
		return "TimeChanging"
	case StateSeeking:
		return "Seeking"
	default:
		return "Unknown"
	}
}

// IsBusy returns true while waiting on the engine.
func (s State) IsBusy() bool {
	return s == StateStarting || s == StateSeeking
}

// Intent is the user action that most recently drove playback.
type Intent int

const (
	IntentNone Intent = iota
	IntentPlay
	IntentPause
	IntentResume
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentPlay:
		return "Play"
	case IntentPause:
		return "Pause"
	case IntentResume:
		return "Resume"
	default:
		return "Unknown"
	}
}
