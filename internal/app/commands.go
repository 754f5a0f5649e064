package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/remoteplay/internal/playback"
)

// Dispatcher returns a playback.Dispatcher that routes events through the
// program returned by prog. prog is resolved lazily so the controller can be
// built before the program.
func Dispatcher(prog func() *tea.Program) playback.Dispatcher {
	return func(fn func()) {
		if p := prog(); p != nil {
			p.Send(CallbackMsg(fn))
		}
	}
}

// StartCmd returns a command that starts playback on the event loop.
func StartCmd() tea.Cmd {
	return func() tea.Msg { return StartMsg{} }
}

// WatchEvents returns a command that waits for the next controller event.
func (m Model) WatchEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case c := <-sub.ControlsChanged:
			return ControlsChangedMsg(c)
		case e := <-sub.PositionChanged:
			return PositionChangedMsg(e)
		case e := <-sub.Error:
			return EngineErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}
