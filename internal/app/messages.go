// Package app contains the TUI model that drives the playback controller.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/remoteplay/internal/playback"
)

// PlaybackMessage is implemented by messages coming from the controller.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// CallbackMsg carries an engine or timer event onto the event loop.
type CallbackMsg func()

// StartMsg asks the model to start playback of the configured URL.
type StartMsg struct{}

// StateChangedMsg is sent when the controller changes state.
type StateChangedMsg playback.StateChange

func (StateChangedMsg) playbackMessage() {}

// ControlsChangedMsg carries the control vector published after every
// transition and redraw tick.
type ControlsChangedMsg playback.Controls

func (ControlsChangedMsg) playbackMessage() {}

// PositionChangedMsg is sent when a seek is issued or deferred.
type PositionChangedMsg playback.PositionChange

func (PositionChangedMsg) playbackMessage() {}

// EngineErrorMsg is sent when the engine fails.
type EngineErrorMsg playback.ErrorEvent

func (EngineErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent once the controller has been torn down.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}
