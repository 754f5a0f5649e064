// internal/app/update.go
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/remoteplay/internal/errmsg"
	"github.com/llehouerou/remoteplay/internal/keymap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(PlaybackMessage); ok {
		return m.handlePlaybackMsg(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case CallbackMsg:
		msg()
		return m, nil

	case StartMsg:
		if err := m.Playback.StartPlayback(m.URL); err != nil {
			m.reject(errmsg.OpPlaybackStart, err)
			return m, nil
		}
		m.Log.Info("playback requested", zap.String("url", m.URL))
		return m, nil

	case spinner.TickMsg:
		if !m.Playback.Controls().BusyVisible {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses the last error
	m.ErrorMsg = ""

	switch m.Keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		m.Playback.Teardown()
		return m, tea.Quit
	case keymap.ActionPlay:
		m.handlePlay()
	case keymap.ActionPlayPause:
		m.handlePlayPause()
	case keymap.ActionVolumeUp:
		m.handleVolume(m.VolumeStep)
	case keymap.ActionVolumeDown:
		m.handleVolume(-m.VolumeStep)
	case keymap.ActionToggleMute:
		m.handleToggleMute()
	case keymap.ActionScrubBack:
		m.handleScrub(-m.ScrubStep)
	case keymap.ActionScrubForward:
		m.handleScrub(m.ScrubStep)
	case keymap.ActionSeekCommit:
		m.handleSeekCommit()
	case keymap.ActionSeekCancel:
		m.handleSeekCancel()
	}
	return m, nil
}
