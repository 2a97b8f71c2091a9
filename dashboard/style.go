package dashboard

import "github.com/charmbracelet/lipgloss"

// Style holds the lipgloss styles of the dashboard.
type Style struct {
	Title     lipgloss.Style
	Recording lipgloss.Style
	Paused    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Canvas    lipgloss.Style
}

// NewStyle returns the dashboard styles for a dark or light terminal.
func NewStyle(dark bool) Style {
	fg := lipgloss.Color("#1f2335")
	if dark {
		fg = lipgloss.Color("#e0e0e0")
	}

	return Style{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5f5f")),
		Paused:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaf00")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Width(10),
		Value:     lipgloss.NewStyle().Foreground(fg),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
		Canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f87af")),
	}
}
