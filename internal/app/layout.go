package app

import (
	"github.com/llehouerou/vitrine/internal/ui/layout"
)

// resize applies the current terminal size to the mounted widgets.
func (m *Model) resize() {
	m.popups.SetSize(m.width, m.height)

	if d := m.desktop(); d != nil {
		r := layout.DesktopRegions(m.width, m.height, m.opts.ThumbHeight)
		d.viewer.SetOrigin(r.Viewer.Row, r.Viewer.Col)
		d.viewer.SetSize(r.Viewer.Width, r.Viewer.Height)
		d.strip.SetOrigin(r.Strip.Row, r.Strip.Col)
		d.strip.SetSize(r.Strip.Width, r.Strip.Height)
		m.applyFocus()
		return
	}
	if mp := m.mobile(); mp != nil {
		r := layout.MobileRegion(m.width, m.height)
		mp.strip.SetOrigin(r.Row, r.Col)
		mp.strip.SetSize(r.Width, r.Height+layout.IndicatorHeight)
	}
}

// applyFocus marks the focused desktop widget.
func (m *Model) applyFocus() {
	d := m.desktop()
	if d == nil {
		return
	}
	if d.strip.Height() == 0 {
		m.focus = FocusViewer
	}
	d.viewer.SetFocused(m.focus == FocusViewer)
	d.strip.SetFocused(m.focus == FocusStrip)
}

// toggleFocus switches keyboard focus between the viewer and the strip.
func (m *Model) toggleFocus() {
	if m.desktop() == nil {
		return
	}
	if m.focus == FocusViewer {
		m.focus = FocusStrip
	} else {
		m.focus = FocusViewer
	}
	m.applyFocus()
}
