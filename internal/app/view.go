// internal/app/view.go
package app

import (
	"github.com/llehouerou/remoteplay/internal/keymap"
	"github.com/llehouerou/remoteplay/internal/playback"
	"github.com/llehouerou/remoteplay/internal/ui/playerbar"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}
	return playerbar.Render(m.playerBarState(), m.Width)
}

func (m Model) playerBarState() playerbar.State {
	c := m.Controls

	s := playerbar.State{
		Controls: c,
		URL:      m.URL,
		Volume:   m.Volume,
		Message:  m.ErrorMsg,
		Hints:    m.hints(c),
	}
	if d, ok := m.Playback.TrackDuration(); ok {
		s.Duration = playback.FormatPosition(d)
	}
	if m.Muter != nil {
		s.Muted = m.Muter.Muted()
	}
	if c.BusyVisible {
		s.Spinner = m.Spinner.View()
	}
	return s
}

// hints lists the keys for the actions the current controls allow.
func (m Model) hints(c playback.Controls) []playerbar.Hint {
	scrubbing := c.State == playback.StateTimeChanging

	pauseLabel := "pause"
	if c.ResumeEnabled {
		pauseLabel = "resume"
	}

	hint := func(a keymap.Action, label string, enabled bool) playerbar.Hint {
		return playerbar.Hint{Key: m.Keys.Hint(a), Label: label, Enabled: enabled}
	}

	hints := []playerbar.Hint{
		hint(keymap.ActionPlay, "play", c.PlayEnabled),
		hint(keymap.ActionPlayPause, pauseLabel, c.PauseEnabled || c.ResumeEnabled),
		hint(keymap.ActionScrubForward, "seek", c.SeekEnabled),
	}
	if scrubbing {
		hints = append(hints,
			hint(keymap.ActionSeekCommit, "apply", true),
			hint(keymap.ActionSeekCancel, "cancel", true),
		)
	}
	hints = append(hints,
		hint(keymap.ActionVolumeUp, "volume", c.VolumeEnabled),
		hint(keymap.ActionQuit, "quit", true),
	)
	return hints
}
