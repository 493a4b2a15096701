package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/app/handler"
	"github.com/llehouerou/vitrine/internal/app/popupctl"
	"github.com/llehouerou/vitrine/internal/keymap"
)

// handleKey routes a key to the open popup, the global actions, then the
// focused widget.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if handled, cmd := m.popups.HandleKey(msg); handled {
		return cmd
	}

	a := m.resolver.Resolve(msg.String())
	if a == "" {
		return nil
	}
	_, cmd := handler.Chain(a, m.handleGlobal, m.focusedHandler())
	return cmd
}

func (m *Model) handleGlobal(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionQuit:
		m.cancel()
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		return handler.Handled(m.popups.ShowHelp(m.helpContexts()))
	case keymap.ActionClose:
		m.popups.Hide(popupctl.Help)
		return handler.HandledNoCmd
	case keymap.ActionSwitchFocus:
		m.toggleFocus()
		return handler.HandledNoCmd
	case keymap.ActionReload:
		m.retryFailed()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// focusedHandler returns the widget handler for navigation actions.
func (m *Model) focusedHandler() handler.Handler {
	if d := m.desktop(); d != nil {
		if m.focus == FocusStrip {
			return func(a keymap.Action) handler.Result {
				return handler.From(d.strip.HandleAction(a))
			}
		}
		return func(a keymap.Action) handler.Result {
			return handler.From(d.viewer.HandleAction(a))
		}
	}
	if mp := m.mobile(); mp != nil {
		return func(a keymap.Action) handler.Result {
			return handler.From(mp.strip.HandleAction(a))
		}
	}
	return nil
}

// helpContexts lists the binding groups relevant to the mounted layout.
func (m *Model) helpContexts() []string {
	if m.mobile() != nil {
		return []string{keymap.ContextGlobal, keymap.ContextMobile}
	}
	return []string{keymap.ContextGlobal, keymap.ContextViewer, keymap.ContextStrip}
}

// retryFailed drops failed loads from the store. settle requests the ones
// still needed.
func (m *Model) retryFailed() {
	failed := m.store.Failed()
	for _, ref := range failed {
		m.store.Forget(ref)
	}
	if len(failed) > 0 {
		m.log.Info("retrying failed images", "count", len(failed))
	}
}
