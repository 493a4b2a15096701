// Package handler chains the components that may handle a key action.
package handler

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/keymap"
)

// Result represents the outcome of a handler.
type Result struct {
	Handled bool
	Cmd     tea.Cmd
}

// NotHandled is returned when a handler doesn't handle the action.
var NotHandled = Result{}

// HandledNoCmd is a convenience for handlers that handle but return no command.
var HandledNoCmd = Result{Handled: true}

// Handled creates a Result indicating the action was handled with a command.
func Handled(cmd tea.Cmd) Result {
	return Result{Handled: true, Cmd: cmd}
}

// From adapts the (cmd, handled) pair returned by widget HandleAction methods.
func From(cmd tea.Cmd, handled bool) Result {
	return Result{Handled: handled, Cmd: cmd}
}

// Handler attempts to handle an action.
type Handler func(a keymap.Action) Result

// Chain offers a to each handler in order until one handles it. Nil
// handlers are skipped.
func Chain(a keymap.Action, handlers ...Handler) (bool, tea.Cmd) {
	for _, h := range handlers {
		if h == nil {
			continue
		}
		if r := h(a); r.Handled {
			return true, r.Cmd
		}
	}
	return false, nil
}
