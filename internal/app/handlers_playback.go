// internal/app/handlers_playback.go
package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/remoteplay/internal/errmsg"
	"github.com/llehouerou/remoteplay/internal/playback"
)

// Key handlers only call an operation when its control is enabled, so a
// rejected operation means the control vector and the transition table
// disagree.

func (m *Model) handlePlay() {
	if !m.Playback.Controls().PlayEnabled {
		return
	}
	if err := m.Playback.StartPlayback(m.URL); err != nil {
		m.reject(errmsg.OpPlaybackStart, err)
	}
}

func (m *Model) handlePlayPause() {
	c := m.Playback.Controls()
	switch {
	case c.PauseEnabled:
		if err := m.Playback.Pause(); err != nil {
			m.reject(errmsg.OpPlaybackPause, err)
		}
	case c.ResumeEnabled:
		if err := m.Playback.Resume(); err != nil {
			m.reject(errmsg.OpPlaybackResume, err)
		}
	}
}

func (m *Model) handleVolume(delta float64) {
	if !m.Playback.Controls().VolumeEnabled {
		return
	}
	m.Volume = min(max(m.Volume+delta, 0), 1)
	if err := m.Playback.SetVolume(m.Volume); err != nil {
		m.reject(errmsg.OpVolumeChange, err)
	}
}

func (m *Model) handleToggleMute() {
	if m.Muter == nil {
		return
	}
	m.Muter.SetMuted(!m.Muter.Muted())
}

func (m *Model) handleScrub(delta float64) {
	c := m.Playback.Controls()
	if !c.SeekEnabled {
		return
	}
	if c.State != playback.StateTimeChanging {
		if err := m.Playback.BeginSeek(); err != nil {
			m.reject(errmsg.OpPlaybackSeek, err)
			return
		}
		m.Scrub = c.Position
	}
	m.Scrub = min(max(m.Scrub+delta, 0), 1)
	if err := m.Playback.DragTo(m.Scrub); err != nil {
		m.reject(errmsg.OpPlaybackSeek, err)
	}
}

func (m *Model) handleSeekCommit() {
	if m.Playback.State() != playback.StateTimeChanging {
		return
	}
	if err := m.Playback.CompleteSeek(m.Scrub); err != nil {
		m.reject(errmsg.OpPlaybackSeek, err)
	}
}

func (m *Model) handleSeekCancel() {
	if m.Playback.State() != playback.StateTimeChanging {
		return
	}
	if err := m.Playback.CancelSeek(); err != nil {
		m.reject(errmsg.OpPlaybackSeek, err)
	}
}

// reject reports an error returned by the controller. Invalid transitions
// are wiring bugs and panic in development builds.
func (m *Model) reject(op errmsg.Op, err error) {
	if errors.Is(err, playback.ErrInvalidState) {
		m.Log.DPanic("operation rejected", zap.String("op", string(op)), zap.Error(err))
		return
	}
	if errors.Is(err, playback.ErrClosed) {
		return
	}
	m.Log.Warn("operation failed", zap.String("op", string(op)), zap.Error(err))
	m.ErrorMsg = errmsg.Format(op, err)
}

// handlePlaybackMsg routes controller events.
func (m Model) handlePlaybackMsg(msg PlaybackMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg:
		m.Log.Debug("state changed",
			zap.Stringer("from", msg.Previous),
			zap.Stringer("to", msg.Current))
		cmds := []tea.Cmd{m.WatchEvents()}
		if msg.Current.IsBusy() && !m.spinning {
			m.spinning = true
			cmds = append(cmds, m.Spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case ControlsChangedMsg:
		m.Controls = playback.Controls(msg)
		return m, m.WatchEvents()

	case PositionChangedMsg:
		m.Log.Debug("seek target",
			zap.Duration("position", msg.Position),
			zap.Bool("deferred", msg.Deferred))
		return m, m.WatchEvents()

	case EngineErrorMsg:
		m.ErrorMsg = errmsg.FormatWith(errmsg.ForEngine(msg.Operation), msg.URL, msg.Err)
		return m, m.WatchEvents()

	case ServiceClosedMsg:
		return m, nil
	}
	return m, nil
}
