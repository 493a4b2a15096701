package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/testutil"
)

var allContexts = []string{keymap.ContextGlobal, keymap.ContextViewer, keymap.ContextStrip, keymap.ContextMobile}

func newTestHelpPopup(contexts []string) (*Model, *testutil.PopupHarness) {
	m := New()
	m.SetContexts(contexts)
	m.SetSize(80, 24)
	return &m, testutil.NewPopupHarness(&m)
}

func assertClosed(t *testing.T, h *testutil.PopupHarness) {
	t.Helper()
	cmd := h.LastCommand()
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	msg := testutil.ExecuteCmd(cmd)
	actionMsg, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", msg)
	}
	if _, ok := actionMsg.Action.(Close); !ok {
		t.Fatalf("expected Close, got %T", actionMsg.Action)
	}
}

func TestHelpBindings_Close(t *testing.T) {
	for _, key := range []string{"q", "?"} {
		t.Run(key, func(t *testing.T) {
			_, h := newTestHelpPopup([]string{keymap.ContextGlobal})
			h.SendKey(key)
			assertClosed(t, h)
		})
	}

	t.Run("esc", func(t *testing.T) {
		_, h := newTestHelpPopup([]string{keymap.ContextGlobal})
		h.SendEscape()
		assertClosed(t, h)
	})
}

func TestHelpBindings_Scroll(t *testing.T) {
	m, h := newTestHelpPopup(allContexts)

	h.SendDown()
	h.SendKey("j")
	if m.scrollOffset != 2 {
		t.Fatalf("scroll offset = %d, want 2", m.scrollOffset)
	}

	h.SendKey("k")
	if m.scrollOffset != 1 {
		t.Errorf("scroll offset = %d, want 1", m.scrollOffset)
	}

	h.SendUp()
	h.SendUp()
	if m.scrollOffset != 0 {
		t.Errorf("scroll offset = %d, want 0 at top", m.scrollOffset)
	}
}

func TestHelpBindings_ScrollStopsAtBottom(t *testing.T) {
	m, h := newTestHelpPopup(allContexts)

	for range 100 {
		h.SendDown()
	}
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scroll offset = %d, want %d", m.scrollOffset, m.maxScroll())
	}
	if m.maxScroll() == 0 {
		t.Error("all contexts should not fit in 24 rows")
	}
}

func TestHelpBindings_View(t *testing.T) {
	m := New()
	m.SetContexts(allContexts)
	m.SetSize(80, 100)
	h := testutil.NewPopupHarness(&m)

	for _, want := range []string{"Help", "Global", "Viewer", "Thumbnails", "Mobile", "Mouse", "hover", "enter, space", "?/esc close"} {
		if err := h.AssertViewContains(want); err != "" {
			t.Error(err)
		}
	}
	if err := h.AssertViewNotContains("j/k scroll"); err != "" {
		t.Error(err)
	}
}

func TestHelpBindings_ScrollHint(t *testing.T) {
	_, h := newTestHelpPopup(allContexts)

	if err := h.AssertViewContains("j/k scroll"); err != "" {
		t.Error(err)
	}
}

func TestHelpBindings_EmptyViewWhenNoSize(t *testing.T) {
	m := New()
	m.SetContexts([]string{keymap.ContextGlobal})
	h := testutil.NewPopupHarness(&m)

	if h.View() != "" {
		t.Errorf("view = %q, want empty when no size", h.View())
	}
}

func TestHelpBindings_SetContextsResetsScroll(t *testing.T) {
	m, h := newTestHelpPopup(allContexts)
	h.SendDown()
	h.SendDown()

	m.SetContexts([]string{keymap.ContextGlobal})

	if m.scrollOffset != 0 {
		t.Errorf("scroll offset = %d after SetContexts, want 0", m.scrollOffset)
	}
}

func TestHelpBindings_SetContextsRespectsCategoryOrder(t *testing.T) {
	m := New()
	m.SetContexts([]string{keymap.ContextMobile, keymap.ContextGlobal})
	m.SetSize(80, 100)

	view := testutil.StripANSI(m.View())
	globalIdx := strings.Index(view, "Global")
	mobileIdx := strings.Index(view, "Mobile")

	if globalIdx == -1 || mobileIdx == -1 {
		t.Fatalf("categories missing from view:\n%s", view)
	}
	if globalIdx > mobileIdx {
		t.Error("Global should appear before Mobile regardless of SetContexts order")
	}
}
