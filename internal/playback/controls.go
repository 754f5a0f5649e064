package playback

import (
	"fmt"
	"time"
)

// Controls describes what each widget should show.
type Controls struct {
	State         State
	PlayEnabled   bool
	PauseEnabled  bool
	ResumeEnabled bool
	VolumeEnabled bool
	SeekEnabled   bool
	BusyVisible   bool
	TimeVisible   bool
	TimeText      string
	Position      float64 // seek slider value, 0.0-1.0
}

// Display is the last position shown to the user.
type Display struct {
	Position float64
	Text     string
}

// DeriveControls maps a state and the shown position to a control vector.
// The result depends on nothing else.
func DeriveControls(s State, d Display) Controls {
	c := Controls{State: s, Position: d.Position, TimeText: d.Text}

	switch s {
	case StateIdle:
		c.PlayEnabled = true
		c.Position = 0
		c.TimeText = ""
	case StateStarting:
		c.BusyVisible = true
		c.Position = 0
		c.TimeText = ""
	case StatePlaying:
		c.PauseEnabled = true
		c.VolumeEnabled = true
		c.SeekEnabled = true
		c.TimeVisible = true
	case StatePaused:
		c.ResumeEnabled = true
		c.VolumeEnabled = true
		c.SeekEnabled = true
		c.TimeVisible = true
	case StateTimeChanging:
		c.VolumeEnabled = true
		c.SeekEnabled = true
		c.TimeVisible = true
	case StateSeeking:
		c.BusyVisible = true
		c.TimeVisible = true
	}

	return c
}

// FormatPosition renders d as hh:mm:ss, rounded to the nearest second.
func FormatPosition(d time.Duration) string {
	total := max(int64(d.Round(time.Second)/time.Second), 0)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total/60%60, total%60)
}

// displayAt builds the display for pos within a track of the given duration.
func displayAt(pos, duration time.Duration) Display {
	pos = min(max(pos, 0), duration)
	var fraction float64
	if duration > 0 {
		fraction = float64(pos) / float64(duration)
	}
	return Display{Position: fraction, Text: FormatPosition(pos)}
}

// positionAt converts a slider fraction to an absolute position.
func positionAt(fraction float64, duration time.Duration) time.Duration {
	fraction = min(max(fraction, 0), 1)
	return time.Duration(fraction*float64(duration) + 0.5)
}
