// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"

	// Playback actions
	ActionPlay       Action = "play"
	ActionPlayPause  Action = "play_pause"
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionToggleMute Action = "toggle_mute"

	// Seek actions
	ActionScrubBack    Action = "scrub_back"    // left - begin or continue scrubbing
	ActionScrubForward Action = "scrub_forward" // right
	ActionSeekCommit   Action = "seek_commit"   // enter - seek to the scrubbed position
	ActionSeekCancel   Action = "seek_cancel"   // esc
)
