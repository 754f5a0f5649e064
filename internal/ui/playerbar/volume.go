package playerbar

import "fmt"

// RenderVolumeCompact renders the volume indicator.
// Format: "vol 100%" or "mute 100%", dimmed while volume is disabled.
func RenderVolumeCompact(volume float64, muted, enabled bool) string {
	pct := int(volume*100 + 0.5)
	label := "vol"
	if muted {
		label = "mute"
	}
	text := fmt.Sprintf("%s %3d%%", label, pct)
	if !enabled {
		return progressEmptyStyle().Render(text)
	}
	return timeStyle().Render(text)
}
