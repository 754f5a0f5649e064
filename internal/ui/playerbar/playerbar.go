package playerbar

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/remoteplay/internal/playback"
)

const (
	contentRows = 3
	minWidth    = 20
)

// Hint is one entry of the key help line.
type Hint struct {
	Key     string
	Label   string
	Enabled bool
}

// State holds everything needed to render the player bar.
type State struct {
	Controls playback.Controls
	URL      string
	Duration string // formatted track duration, empty until known
	Volume   float64
	Muted    bool
	Spinner  string // current busy indicator frame
	Message  string // last error, shown instead of the hints
	Hints    []Hint
}

// Height returns the total height of the player bar.
func Height() int {
	return contentRows + 2 // content + top and bottom border
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	width = max(width, minWidth)
	// Subtract border and padding
	innerWidth := width - 6

	lines := []string{
		renderHeader(s, innerWidth),
		renderProgress(s, innerWidth),
		renderFooter(s, innerWidth),
	}

	return barStyle.Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

// renderHeader builds: ▶  http://host/track.mp3          vol  80%
func renderHeader(s State, width int) string {
	status := statusStyle().Render(statusSymbol(s))
	volume := RenderVolumeCompact(s.Volume, s.Muted, s.Controls.VolumeEnabled)

	urlWidth := max(width-lipgloss.Width(status)-lipgloss.Width(volume)-4, 0)
	url := urlStyle().Render(truncate(s.URL, urlWidth))

	left := status + "  " + url
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(volume), 1)
	return left + strings.Repeat(" ", gap) + volume
}

func renderProgress(s State, width int) string {
	c := s.Controls
	var posText, durText string
	if c.TimeVisible {
		posText = c.TimeText
		durText = s.Duration
	}
	return RenderProgressBar(c.Position, posText, durText, width)
}

func renderFooter(s State, width int) string {
	if s.Message != "" {
		return errorStyle().Render(truncate(s.Message, width))
	}

	parts := make([]string, 0, len(s.Hints))
	used := 0
	for _, h := range s.Hints {
		w := runewidth.StringWidth(h.Key) + 1 + runewidth.StringWidth(h.Label)
		if used > 0 {
			w += 3
		}
		if used+w > width {
			break
		}
		used += w
		parts = append(parts,
			hintKeyStyle(h.Enabled).Render(h.Key)+" "+hintLabelStyle(h.Enabled).Render(h.Label))
	}
	return strings.Join(parts, "   ")
}

func statusSymbol(s State) string {
	if s.Controls.BusyVisible && s.Spinner != "" {
		return s.Spinner
	}
	switch s.Controls.State {
	case playback.StatePlaying:
		return "▶"
	case playback.StatePaused:
		return "⏸"
	case playback.StateTimeChanging:
		return "⇄"
	case playback.StateStarting, playback.StateSeeking:
		return "…"
	default:
		return "■"
	}
}

// truncate shortens s to maxWidth cells after dropping control characters,
// which a hostile URL could use to break the terminal.
func truncate(s string, maxWidth int) string {
	s = strings.Map(func(r rune) rune {
		if r != '\t' && unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return runewidth.Truncate(s, maxWidth, "…")
}
