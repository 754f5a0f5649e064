// Package keymap defines key bindings for the application.
package keymap

// Binding maps keys to an action, with documentation for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "seek"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},

	// Playback
	{ActionPlay, []string{"p"}, "Play", "playback"},
	{ActionPlayPause, []string{" "}, "Pause/resume", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},

	// Seek
	{ActionScrubBack, []string{"left", "h"}, "Scrub back", "seek"},
	{ActionScrubForward, []string{"right", "l"}, "Scrub forward", "seek"},
	{ActionSeekCommit, []string{"enter"}, "Seek", "seek"},
	{ActionSeekCancel, []string{"esc"}, "Cancel seek", "seek"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Default returns a resolver for Bindings.
func Default() *Resolver {
	return NewResolver(Bindings)
}
