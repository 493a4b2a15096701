package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/keymap"
)

func TestResults(t *testing.T) {
	if NotHandled.Handled || NotHandled.Cmd != nil {
		t.Error("NotHandled should be unhandled without command")
	}
	if !HandledNoCmd.Handled || HandledNoCmd.Cmd != nil {
		t.Error("HandledNoCmd should be handled without command")
	}

	cmd := func() tea.Msg { return "test" }
	if r := Handled(cmd); !r.Handled || r.Cmd == nil {
		t.Error("Handled(cmd) should carry the command")
	}
	if r := From(nil, false); r.Handled {
		t.Error("From(nil, false) should be unhandled")
	}
	if r := From(cmd, true); !r.Handled || r.Cmd == nil {
		t.Error("From(cmd, true) should be handled with the command")
	}
}

func TestChain_NoHandlers(t *testing.T) {
	handled, cmd := Chain(keymap.ActionNext)
	if handled {
		t.Error("Chain() with no handlers should return handled=false")
	}
	if cmd != nil {
		t.Error("Chain() with no handlers should return cmd=nil")
	}
}

func TestChain_StopsAtFirstHandled(t *testing.T) {
	var calls []string
	first := func(a keymap.Action) Result {
		calls = append(calls, "first")
		return NotHandled
	}
	second := func(a keymap.Action) Result {
		calls = append(calls, "second")
		if a != keymap.ActionNext {
			t.Errorf("action = %q, want next", a)
		}
		return Handled(func() tea.Msg { return "second" })
	}
	third := func(keymap.Action) Result {
		calls = append(calls, "third")
		return HandledNoCmd
	}

	handled, cmd := Chain(keymap.ActionNext, first, nil, second, third)

	if !handled {
		t.Fatal("Chain should report handled")
	}
	if cmd == nil || cmd() != "second" {
		t.Error("Chain should return the command of the handling handler")
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}
