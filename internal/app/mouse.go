package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/app/popupctl"
)

// handleMouse routes pointer events. The viewer sees every event so the zoom
// overlay notices when the pointer leaves the image.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.popups.ActivePopup() != popupctl.None {
		return nil
	}

	if d := m.desktop(); d != nil {
		frame := d.viewer.HandleMouse(msg)
		stripCmd, onStrip := d.strip.HandleMouse(msg)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if onStrip {
				m.focus = FocusStrip
			} else if _, _, inViewer := d.viewer.Local(msg.X, msg.Y); inViewer {
				m.focus = FocusViewer
			}
			m.applyFocus()
		}
		return tea.Batch(frame, stripCmd)
	}

	if mp := m.mobile(); mp != nil {
		cmd, _ := mp.strip.HandleMouse(msg)
		return cmd
	}
	return nil
}
