package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component drawn above the gallery.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content without border or centering.
	View() string

	SetSize(width, height int)
}
