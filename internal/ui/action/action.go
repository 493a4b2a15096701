// Package action defines the interface for UI component actions.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is something a widget asks the app to do. ActionType identifies it
// in logs.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the widget that raised it.
type Msg struct {
	Source string // "thumbstrip", "mobilestrip", "helpbindings"
	Action Action
}

var _ tea.Msg = Msg{}
