package playback

import "slices"

// Op names a controller operation.
type Op string

const (
	OpStartPlayback Op = "start playback"
	OpPause         Op = "pause"
	OpResume        Op = "resume"
	OpBeginSeek     Op = "begin seek"
	OpDragTo        Op = "drag"
	OpCompleteSeek  Op = "complete seek"
	OpCancelSeek    Op = "cancel seek"
	OpSetVolume     Op = "set volume"
)

// transitions lists the states each operation may be invoked from.
var transitions = map[Op][]State{
	OpStartPlayback: {StateIdle},
	OpPause:         {StatePlaying},
	OpResume:        {StatePaused, StateTimeChanging},
	OpBeginSeek:     {StatePlaying, StatePaused, StateTimeChanging, StateSeeking},
	OpDragTo:        {StateTimeChanging},
	OpCompleteSeek:  {StateTimeChanging},
	OpCancelSeek:    {StateTimeChanging},
	OpSetVolume: {
		StateIdle, StateStarting, StatePlaying,
		StatePaused, StateTimeChanging, StateSeeking,
	},
}

// Allowed reports whether op may be invoked from s.
func Allowed(op Op, s State) bool {
	return slices.Contains(transitions[op], s)
}
