package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/app/popupctl"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/ui/headerbar"
	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(m.opts.Title, m.selector.Mode().String(), m.gallery.Len(), m.width)

	var body string
	if d := m.desktop(); d != nil {
		body = d.viewer.View()
		if strip := d.strip.View(); strip != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, strip)
		}
	} else if mp := m.mobile(); mp != nil {
		body = mp.strip.View()
	}

	view := strings.Join([]string{header, body, m.renderFooter()}, "\n")

	// Overlay all popups
	view = m.popups.RenderOverlay(view)

	// Ensure view is exactly terminal height (pad or truncate if needed)
	view = enforceHeight(view, m.height)

	// Graphics commands not yet painted go first.
	view = m.graphics.String() + view

	// Graphics protocols draw the image after the text layer.
	if m.popups.ActivePopup() == popupctl.None {
		if s := m.slide(); s != nil {
			view += s.Placement()
		}
	}
	return view
}

// renderFooter shows the main key hints for the mounted layout.
func (m Model) renderFooter() string {
	hints := []string{"←/→ navigate"}
	if m.desktop() != nil {
		target := "thumbnails"
		if m.focus == FocusStrip {
			target = "viewer"
		}
		hints = append(hints, m.resolver.Hint(keymap.ActionSwitchFocus)+" "+target, "hover zoom")
	}
	hints = append(hints,
		m.resolver.Hint(keymap.ActionHelp)+" help",
		m.resolver.Hint(keymap.ActionQuit)+" quit",
	)
	return styles.T().S().Subtle.Render(render.Center(strings.Join(hints, " · "), m.width))
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	currentHeight := len(lines)

	if currentHeight == targetHeight {
		return view
	}

	if currentHeight < targetHeight {
		// Pad with empty lines
		for i := currentHeight; i < targetHeight; i++ {
			lines = append(lines, "")
		}
	} else {
		lines = lines[:targetHeight]
	}

	return strings.Join(lines, "\n")
}
