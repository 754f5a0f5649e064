package playerbar

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#a78bfa")
	colorBase    = lipgloss.Color("#c0c0c0")
	colorMuted   = lipgloss.Color("#808080")
	colorSubtle  = lipgloss.Color("#585858")
	colorError   = lipgloss.Color("#ff5555")
)

var barStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240"))

func statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
}

func urlStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorBase).Bold(true)
}

func timeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func progressFilledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorPrimary)
}

func progressEmptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func hintKeyStyle(enabled bool) lipgloss.Style {
	if enabled {
		return lipgloss.NewStyle().Foreground(colorPrimary)
	}
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func hintLabelStyle(enabled bool) lipgloss.Style {
	if enabled {
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
	return lipgloss.NewStyle().Foreground(colorSubtle)
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}
