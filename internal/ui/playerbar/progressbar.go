package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar for a slider value
// in [0, 1]. Times are omitted when empty.
// Format: 00:01:23  ▓▓▓▓▓░░░░░  00:04:56
func RenderProgressBar(fraction float64, posText, durText string, width int) string {
	fixedWidth := 0
	if posText != "" {
		fixedWidth += lipgloss.Width(posText) + 2
	}
	if durText != "" {
		fixedWidth += lipgloss.Width(durText) + 2
	}
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return timeStyle().Render(strings.TrimSpace(posText + " / " + durText))
	}

	fraction = min(max(fraction, 0), 1)
	filled := min(int(float64(barWidth)*fraction), barWidth)

	var b strings.Builder
	if posText != "" {
		b.WriteString(timeStyle().Render(posText))
		b.WriteString("  ")
	}
	b.WriteString(progressFilledStyle().Render(strings.Repeat(filledBlock, filled)))
	b.WriteString(progressEmptyStyle().Render(strings.Repeat(emptyBlock, barWidth-filled)))
	if durText != "" {
		b.WriteString("  ")
		b.WriteString(timeStyle().Render(durText))
	}
	return b.String()
}
