// Package popupctl manages the modal popups drawn over the gallery.
package popupctl

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/ui/helpbindings"
	"github.com/llehouerou/vitrine/internal/ui/overlay"
	"github.com/llehouerou/vitrine/internal/ui/popup"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

// errorMaxWidth bounds the error box so long messages wrap.
const errorMaxWidth = 60

// Manager manages all modal popups and overlays.
type Manager struct {
	popups   map[Type]popup.Popup
	sizes    map[Type]popup.SizeConfig
	errorMsg string
	width    int
	height   int
}

// New creates a new Manager.
func New() *Manager {
	return &Manager{
		popups: make(map[Type]popup.Popup),
		sizes: map[Type]popup.SizeConfig{
			Error: {MaxWidth: errorMaxWidth},
		},
	}
}

// SetSize updates the dimensions for popup rendering.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	for _, pop := range p.popups {
		pop.SetSize(width, height)
	}
}

// IsVisible returns true if the specified popup type is visible.
func (p *Manager) IsVisible(t Type) bool {
	switch t {
	case None:
		return false
	case Error:
		return p.errorMsg != ""
	case Help:
		return p.popups[t] != nil
	}
	return false
}

// ActivePopup returns which popup is currently active (highest priority).
func (p *Manager) ActivePopup() Type {
	for _, t := range Priority {
		if p.IsVisible(t) {
			return t
		}
	}
	return None
}

// Show displays a popup of the given type.
func (p *Manager) Show(t Type, pop popup.Popup) tea.Cmd {
	pop.SetSize(p.width, p.height)
	p.popups[t] = pop
	return pop.Init()
}

// Hide hides the specified popup type.
func (p *Manager) Hide(t Type) {
	switch t {
	case None:
	case Error:
		p.errorMsg = ""
	case Help:
		delete(p.popups, t)
	}
}

// ShowHelp displays the help popup with the given contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	help := helpbindings.New()
	help.SetContexts(contexts)
	return p.Show(Help, &help)
}

// ShowError displays an error message until the next key press.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

// ErrorMsg returns the displayed error message.
func (p *Manager) ErrorMsg() string {
	return p.errorMsg
}

// HandleKey routes key events to the active popup.
// Returns (handled, cmd) where handled is true if a popup consumed the key.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Error popup: dismiss on any key
	if p.errorMsg != "" {
		p.errorMsg = ""
		return true, nil
	}

	active := p.ActivePopup()
	if active == None {
		return false, nil
	}
	pop := p.popups[active]
	if pop == nil {
		return false, nil
	}

	updated, cmd := pop.Update(msg)
	p.popups[active] = updated
	return true, cmd
}

// RenderOverlay renders active popup(s) on top of the base view.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range RenderOrder {
		if !p.IsVisible(t) {
			continue
		}

		var content string
		if t == Error {
			content = p.renderError()
		} else {
			content = p.popups[t].View()
		}
		rendered := popup.RenderBordered(content, p.width, p.height, p.sizes[t])
		base = overlay.Compose(base, strings.TrimSuffix(rendered, "\n"), p.width)
	}
	return base
}

func (p *Manager) renderError() string {
	t := styles.T().S()
	var b strings.Builder
	b.WriteString(t.Error.Render("Error"))
	b.WriteString("\n\n")
	b.WriteString(t.Base.Width(errorMaxWidth - 6).Render(p.errorMsg))
	b.WriteString("\n\n")
	b.WriteString(t.Subtle.Render("Press any key to dismiss"))
	return b.String()
}
