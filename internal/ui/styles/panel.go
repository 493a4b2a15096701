package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns a rounded panel border colored by focus.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

// ThumbLabelStyle styles the label row under a thumbnail: accent for the
// active slide, secondary for the keyboard cursor.
func ThumbLabelStyle(active, cursor bool) lipgloss.Style {
	t := T()
	switch {
	case active:
		return lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	case cursor:
		return lipgloss.NewStyle().Foreground(t.Secondary)
	default:
		return lipgloss.NewStyle().Foreground(t.FgSubtle)
	}
}
