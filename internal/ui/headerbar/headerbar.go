// Package headerbar renders the one-line header above the gallery.
package headerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// tab represents a layout tab.
type tab struct {
	name string
	mode string
}

var tabs = []tab{
	{"Desktop", "desktop"},
	{"Mobile", "mobile"},
}

// Render returns the header bar: the product title on the left, the layout
// tabs and the image count on the right. currentMode is "desktop" or
// "mobile".
func Render(title, currentMode string, count, width int) string {
	if width <= 0 {
		return ""
	}
	t := styles.T()
	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := t.S().Subtle
	separator := t.S().Subtle.Render(" │ ")

	parts := make([]string, 0, len(tabs))
	for _, tb := range tabs {
		style := inactiveStyle
		if tb.mode == currentMode {
			style = activeStyle
		}
		parts = append(parts, style.Render(tb.name))
	}
	right := strings.Join(parts, separator) + separator + t.S().Muted.Render(imageCount(count))

	// The tabs go first when the terminal is too narrow for both.
	if lipgloss.Width(right) >= width {
		return t.S().Muted.Render(render.Truncate(imageCount(count), width))
	}

	room := width - lipgloss.Width(right) - 1
	left := ""
	if title = render.Truncate(title, room); title != "" {
		left = styles.ApplyBoldGradient(title, t.Primary, t.Secondary)
	}
	return render.Row(left, right, width)
}

func imageCount(n int) string {
	if n == 1 {
		return "1 image"
	}
	return fmt.Sprintf("%d images", n)
}
