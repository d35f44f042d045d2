package tui

import (
	"sparkcalc/sparkos/services/settings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the terminal color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Screen     lipgloss.Color
	Operator   lipgloss.Color
	Function   lipgloss.Color
	Equals     lipgloss.Color
	Error      lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#1E2228"),
		Muted:      lipgloss.Color("#7A808A"),
		Border:     lipgloss.Color("#C5CBD3"),
		Screen:     lipgloss.Color("#FFFFFF"),
		Operator:   lipgloss.Color("#2F6FDE"),
		Function:   lipgloss.Color("#6B7280"),
		Equals:     lipgloss.Color("#2F6FDE"),
		Error:      lipgloss.Color("#E53935"),
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#EEEEEE"),
		Muted:      lipgloss.Color("#888888"),
		Border:     lipgloss.Color("#3A4150"),
		Screen:     lipgloss.Color("#22252C"),
		Operator:   lipgloss.Color("#4AD1FF"),
		Function:   lipgloss.Color("#9CA3AF"),
		Equals:     lipgloss.Color("#4A8BF5"),
		Error:      lipgloss.Color("#FF6B6B"),
		IsDark:     true,
	}
}

// ThemeFor maps the settings theme name.
func ThemeFor(t settings.Theme) Theme {
	if t == settings.ThemeDark {
		return DarkTheme()
	}
	return LightTheme()
}

type styles struct {
	header   lipgloss.Style
	history  lipgloss.Style
	screen   lipgloss.Style
	errText  lipgloss.Style
	key      lipgloss.Style
	operator lipgloss.Style
	function lipgloss.Style
	equals   lipgloss.Style
	help     lipgloss.Style
}

func newStyles(th Theme, width int) styles {
	key := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(th.Foreground)
	return styles{
		header:  lipgloss.NewStyle().Foreground(th.Muted).Bold(true),
		history: lipgloss.NewStyle().Foreground(th.Muted).Width(width).Align(lipgloss.Right),
		screen: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Background(th.Screen).
			Foreground(th.Foreground).
			Bold(true).
			Padding(0, 1).
			Width(width - 2).
			Align(lipgloss.Right),
		errText:  lipgloss.NewStyle().Foreground(th.Error).Bold(true),
		key:      key,
		operator: key.Foreground(th.Operator).Bold(true),
		function: key.Foreground(th.Function),
		equals:   key.Foreground(th.Equals).Bold(true),
		help:     lipgloss.NewStyle().Foreground(th.Muted),
	}
}
