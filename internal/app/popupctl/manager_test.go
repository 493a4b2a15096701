package popupctl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/helpbindings"
	"github.com/llehouerou/vitrine/internal/ui/testutil"
)

func blankScreen(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestManager_Help(t *testing.T) {
	p := New()
	p.SetSize(80, 30)
	assert.Equal(t, None, p.ActivePopup())

	p.ShowHelp([]string{keymap.ContextGlobal, keymap.ContextViewer})

	require.True(t, p.IsVisible(Help))
	out := testutil.StripANSI(p.RenderOverlay(blankScreen(80, 30)))
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "Previous image")
	assert.Len(t, strings.Split(out, "\n"), 30)

	handled, cmd := p.HandleKey(testutil.Key("esc"))
	require.True(t, handled)
	require.NotNil(t, cmd)
	msg, ok := cmd().(action.Msg)
	require.True(t, ok)
	assert.Equal(t, helpbindings.Close{}, msg.Action)

	p.Hide(Help)
	assert.False(t, p.IsVisible(Help))
}

func TestManager_ErrorTakesPriority(t *testing.T) {
	p := New()
	p.SetSize(80, 30)
	p.ShowHelp([]string{keymap.ContextGlobal})

	p.ShowError("could not draw image")

	assert.Equal(t, Error, p.ActivePopup())
	out := testutil.StripANSI(p.RenderOverlay(blankScreen(80, 30)))
	assert.Contains(t, out, "could not draw image")
	assert.Contains(t, out, "Press any key to dismiss")

	handled, cmd := p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Empty(t, p.ErrorMsg())
	assert.Equal(t, Help, p.ActivePopup())
}

func TestManager_NoPopupPassesKeys(t *testing.T) {
	p := New()

	handled, _ := p.HandleKey(testutil.Key("q"))

	assert.False(t, handled)
	base := blankScreen(10, 3)
	assert.Equal(t, base, p.RenderOverlay(base))
}
