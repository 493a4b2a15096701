// Package mobilestrip implements the narrow-screen gallery: one slide at a
// time with a page indicator, navigated by keys, the horizontal wheel or a
// click on either half of the image.
package mobilestrip

import (
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/layout"
	"github.com/llehouerou/vitrine/internal/ui/slide"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/zoom"
)

// Source supplies load state for media references.
type Source interface {
	Get(ref string) *media.Entry
}

const (
	activeDot   = "●"
	inactiveDot = "○"
	dotGap      = " "
)

// Model is the mobile strip. Its height includes the indicator row.
type Model struct {
	ui.Base

	refs     []string
	source   Source
	renderer *imgproto.Renderer
	pager    paginator.Model
}

// New creates a strip over refs. renderer draws the slide image.
func New(refs []string, source Source, renderer *imgproto.Renderer) *Model {
	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1
	p.SetTotalPages(len(refs))
	p.InactiveDot = styles.T().S().Subtle.Render(inactiveDot) + dotGap
	p.ArabicFormat = "%d / %d"

	m := &Model{
		refs:     refs,
		source:   source,
		renderer: renderer,
		pager:    p,
	}
	m.styleActiveDot()
	return m
}

// Index returns the displayed slide. It is 0 for an empty list.
func (m *Model) Index() int {
	return m.pager.Page
}

// ShowSlide displays the slide at index.
func (m *Model) ShowSlide(index int) {
	if index < 0 || index >= len(m.refs) {
		return
	}
	m.pager.Page = index
	m.styleActiveDot()
}

// styleActiveDot colors the active dot along the theme gradient by position.
func (m *Model) styleActiveDot() {
	t := styles.T()
	pos := 0.0
	if n := len(m.refs); n > 1 {
		pos = float64(m.pager.Page) / float64(n-1)
	}
	c := styles.Blend(t.Primary, t.Secondary, pos)
	m.pager.ActiveDot = lipgloss.NewStyle().Foreground(c).Render(activeDot) + dotGap
}

// step returns the page the paginator moves to, clamped at both ends.
func (m *Model) step(delta int) (int, bool) {
	if len(m.refs) == 0 {
		return 0, false
	}
	p := m.pager
	for range max(delta, -delta) {
		if delta < 0 {
			p.PrevPage()
		} else {
			p.NextPage()
		}
	}
	return p.Page, p.Page != m.pager.Page
}

func (m *Model) selectCmd(target int, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return func() tea.Msg { return ActionMsg(Selected{Index: target}) }
}

// HandleAction applies a navigation action.
func (m *Model) HandleAction(a keymap.Action) (tea.Cmd, bool) {
	switch a {
	case keymap.ActionPrev:
		return m.selectCmd(m.step(-1)), true
	case keymap.ActionNext:
		return m.selectCmd(m.step(1)), true
	case keymap.ActionFirst:
		return m.selectCmd(m.step(-m.pager.Page)), true
	case keymap.ActionLast:
		return m.selectCmd(m.step(len(m.refs) - 1 - m.pager.Page)), true
	}
	return nil, false
}

// HandleMouse maps the horizontal wheel and clicks on either half of the
// strip to slide changes.
func (m *Model) HandleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	lx, _, inside := m.Local(msg.X, msg.Y)
	if !inside {
		return nil, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelLeft:
		return m.selectCmd(m.step(-1)), true
	case tea.MouseButtonWheelRight:
		return m.selectCmd(m.step(1)), true
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil, true
		}
		if lx < m.Width()/2 {
			return m.selectCmd(m.step(-1)), true
		}
		return m.selectCmd(m.step(1)), true
	}
	return nil, true
}

// area returns the image area in screen cells.
func (m *Model) area() layout.Rect {
	row, col := m.Origin()
	return layout.Rect{
		Row:    row,
		Col:    col,
		Width:  m.Width(),
		Height: max(m.Height()-layout.IndicatorHeight, 0),
	}
}

func (m *Model) asset() *media.Asset {
	if len(m.refs) == 0 || m.source == nil {
		return nil
	}
	if e := m.source.Get(m.refs[m.pager.Page]); e != nil {
		return e.Asset
	}
	return nil
}

// ImageBox returns the on-screen box of the displayed image.
func (m *Model) ImageBox() layout.Rect {
	area := m.area()
	if area.Height < ui.MinImageRows {
		return layout.Rect{}
	}
	box := slide.Box(m.asset(), area.Width, area.Height)
	if box.Empty() {
		return box
	}
	box.Row += area.Row
	box.Col += area.Col
	return box
}

// Sync renders the displayed slide through the renderer and returns the
// terminal commands to write before the next view. The mobile strip has no
// zoom, so the full image is always drawn.
func (m *Model) Sync() (string, error) {
	a := m.asset()
	box := m.ImageBox()
	if a == nil || box.Empty() {
		return m.renderer.Clear(), nil
	}
	return m.renderer.Show(slide.Frame(a, zoom.Full), box.Width, box.Height)
}

// Placement returns the sequence drawing the image at its box.
func (m *Model) Placement() string {
	box := m.ImageBox()
	if box.Empty() || !m.renderer.HasImage() {
		return ""
	}
	return m.renderer.Place(box.Row+1, box.Col+1)
}

// View renders the image area and the page indicator.
func (m *Model) View() string {
	w, h := m.Size()
	if w <= 0 || h <= 0 {
		return ""
	}
	if len(m.refs) == 0 {
		return slide.Empty(w, h)
	}
	area := m.area()
	if area.Height == 0 {
		return m.indicator(w)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.image(area), m.indicator(w))
}

func (m *Model) image(area layout.Rect) string {
	ref := m.refs[m.pager.Page]
	box := m.ImageBox()
	if box.Empty() || !m.renderer.HasImage() {
		var entry *media.Entry
		if m.source != nil {
			entry = m.source.Get(ref)
		}
		return slide.Placeholder(entry, media.Name(ref), area.Width, area.Height)
	}

	top := strings.Repeat("\n", box.Row-area.Row)
	left := strings.Repeat(" ", box.Col-area.Col)
	lines := strings.Split(m.renderer.Cells(), "\n")
	for i, l := range lines {
		lines[i] = left + l
	}
	return lipgloss.NewStyle().
		Width(area.Width).
		Height(area.Height).
		Render(top + strings.Join(lines, "\n"))
}

// indicator renders the page dots, or "n / total" when the dots do not fit.
func (m *Model) indicator(width int) string {
	p := m.pager
	if len(m.refs)*(lipgloss.Width(activeDot)+len(dotGap)) > width {
		p.Type = paginator.Arabic
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, p.View())
}
