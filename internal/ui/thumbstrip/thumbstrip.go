// Package thumbstrip implements the horizontally scrollable thumbnail
// navigator of the desktop gallery.
package thumbstrip

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/cursor"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/layout"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

// Source supplies load state for media references.
type Source interface {
	Get(ref string) *media.Entry
}

const noReveal = -1

// Model is the thumbnail strip. Its width and height are the outer panel
// size, including the border.
type Model struct {
	ui.Base

	refs   []string
	source Source
	thumbW int
	thumbH int

	active  int
	cursor  cursor.Cursor
	mounted bool
	pending int // reveal requested before the strip had a size

	art map[string]string
}

// New creates a mounted strip over refs. source may be nil, in which case
// every thumbnail is a numbered placeholder.
func New(refs []string, source Source, thumbW, thumbH int) *Model {
	return &Model{
		refs:    refs,
		source:  source,
		thumbW:  max(thumbW, 1),
		thumbH:  max(thumbH, 1),
		active:  noReveal,
		cursor:  cursor.New(ui.ThumbScrollMargin),
		mounted: true,
		pending: noReveal,
		art:     make(map[string]string),
	}
}

// Len returns the number of thumbnails.
func (m *Model) Len() int {
	return len(m.refs)
}

// Mounted reports whether the strip is still part of the screen.
func (m *Model) Mounted() bool {
	return m.mounted
}

// Teardown unmounts the strip. Later sync calls still work but nothing reads
// the result.
func (m *Model) Teardown() {
	m.mounted = false
	m.art = make(map[string]string)
}

// Active returns the highlighted index, or -1.
func (m *Model) Active() int {
	return m.active
}

// CursorPos returns the keyboard cursor position.
func (m *Model) CursorPos() int {
	return m.cursor.Pos()
}

// Offset returns the first visible thumbnail.
func (m *Model) Offset() int {
	return m.cursor.Offset()
}

// Span returns how many thumbnails fit in the current width.
func (m *Model) Span() int {
	return layout.VisibleThumbs(m.Width(), m.thumbW)
}

// SetActive highlights index and moves the keyboard cursor onto it without
// scrolling.
func (m *Model) SetActive(index int) {
	if index < 0 || index >= len(m.refs) {
		return
	}
	m.active = index
	m.cursor.SetPos(index, len(m.refs))
}

// ScrollIntoView scrolls the least amount that makes index fully visible.
// A visible index leaves the offset alone. Before the strip has a size the
// request is kept and applied on the next SetSize; a newer request replaces
// an older one.
func (m *Model) ScrollIntoView(index int) {
	if index < 0 || index >= len(m.refs) {
		return
	}
	if m.Span() == 0 {
		m.pending = index
		return
	}
	m.pending = noReveal
	m.cursor.Reveal(index, len(m.refs), m.Span())
}

// SetSize sets the outer size and applies any pending reveal.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	span := m.Span()
	if span == 0 {
		return
	}
	m.cursor.ClampToBounds(len(m.refs), span)
	if m.pending != noReveal {
		m.cursor.Reveal(m.pending, len(m.refs), span)
		m.pending = noReveal
	}
}

// ScrollBy scrolls the strip freely, leaving the selection alone. A manual
// scroll discards a pending reveal.
func (m *Model) ScrollBy(delta int) bool {
	m.pending = noReveal
	return m.cursor.ScrollBy(delta, len(m.refs), m.Span())
}

// VisibleRefs returns the references currently on screen.
func (m *Model) VisibleRefs() []string {
	start, end := m.cursor.VisibleRange(len(m.refs), m.Span())
	return m.refs[start:end]
}

// HandleAction applies a key action while the strip has focus.
func (m *Model) HandleAction(a keymap.Action) (tea.Cmd, bool) {
	n, span := len(m.refs), m.Span()
	switch a {
	case keymap.ActionPrev:
		m.cursor.Move(-1, n, span)
	case keymap.ActionNext:
		m.cursor.Move(1, n, span)
	case keymap.ActionFirst:
		m.cursor.Jump(0, n, span)
	case keymap.ActionLast:
		m.cursor.Jump(n-1, n, span)
	case keymap.ActionSelect:
		if n == 0 {
			return nil, true
		}
		return m.selectCmd(m.cursor.Pos()), true
	default:
		return nil, false
	}
	m.pending = noReveal
	return nil, true
}

// HandleMouse handles clicks and wheel events in screen coordinates and
// reports whether the event landed on the strip.
func (m *Model) HandleMouse(msg tea.MouseMsg) (tea.Cmd, bool) {
	lx, ly, inside := m.Local(msg.X, msg.Y)
	if !inside {
		return nil, false
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.ScrollBy(-1)
		return nil, true
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.ScrollBy(1)
		return nil, true
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil, true
	}
	if i, ok := m.hit(lx, ly); ok {
		m.cursor.SetPos(i, len(m.refs))
		return m.selectCmd(i), true
	}
	return nil, true
}

// hit maps a local cell to a thumbnail index.
func (m *Model) hit(lx, ly int) (int, bool) {
	x, y := lx-layout.BorderSize, ly-layout.BorderSize
	if x < 0 || y < 0 || y > m.thumbH {
		return 0, false
	}
	slot := x / (m.thumbW + layout.ThumbGap)
	if x%(m.thumbW+layout.ThumbGap) >= m.thumbW || slot >= m.Span() {
		return 0, false
	}
	i := m.cursor.Offset() + slot
	if i >= len(m.refs) {
		return 0, false
	}
	return i, true
}

func (m *Model) selectCmd(i int) tea.Cmd {
	return func() tea.Msg { return ActionMsg(Selected{Index: i}) }
}

// View renders the strip panel.
func (m *Model) View() string {
	w, h := m.Size()
	if w < 2*layout.BorderSize || h < 2*layout.BorderSize {
		return ""
	}
	innerW, innerH := w-2*layout.BorderSize, h-2*layout.BorderSize

	start, end := m.cursor.VisibleRange(len(m.refs), m.Span())
	rows := make([][]string, m.thumbH+1)
	for i := start; i < end; i++ {
		thumb := strings.Split(m.thumbnail(i), "\n")
		for r := range m.thumbH {
			line := ""
			if r < len(thumb) {
				line = thumb[r]
			}
			rows[r] = append(rows[r], line)
		}
		rows[m.thumbH] = append(rows[m.thumbH], m.label(i))
	}

	gap := strings.Repeat(" ", layout.ThumbGap)
	lines := make([]string, 0, innerH)
	for _, cells := range rows {
		if len(lines) == innerH {
			break
		}
		lines = append(lines, strings.Join(cells, gap))
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(innerW).
		Height(innerH).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

// thumbnail renders slot i as exactly thumbW x thumbH cells.
func (m *Model) thumbnail(i int) string {
	ref := m.refs[i]
	if art, ok := m.art[ref]; ok {
		return art
	}

	var entry *media.Entry
	if m.source != nil {
		entry = m.source.Get(ref)
	}

	t := styles.T().S()
	switch {
	case entry != nil && entry.Asset != nil && entry.Asset.Image != nil:
		img := entry.Asset.Image
		b := img.Bounds()
		cols, rows := layout.FitAspect(b.Dx(), b.Dy(), m.thumbW, m.thumbH)
		art := lipgloss.Place(m.thumbW, m.thumbH, lipgloss.Center, lipgloss.Center,
			imgproto.RenderBlocks(img, cols, rows))
		m.art[ref] = art
		return art
	case entry != nil && entry.Err != nil:
		return lipgloss.Place(m.thumbW, m.thumbH, lipgloss.Center, lipgloss.Center, t.Error.Render("✕"))
	default:
		return lipgloss.Place(m.thumbW, m.thumbH, lipgloss.Center, lipgloss.Center, t.Placeholder.Render("·"))
	}
}

// label renders the row under slot i: the slide number inside a bar that
// marks the active slide and the keyboard cursor.
func (m *Model) label(i int) string {
	active := i == m.active
	focus := m.IsFocused() && i == m.cursor.Pos()

	fill := " "
	switch {
	case active:
		fill = "━"
	case focus:
		fill = "─"
	}

	num := " " + strconv.Itoa(i+1) + " "
	if len(num) > m.thumbW {
		num = strconv.Itoa(i + 1)
	}
	left := max((m.thumbW-len(num))/2, 0)
	right := max(m.thumbW-len(num)-left, 0)
	bar := strings.Repeat(fill, left) + num + strings.Repeat(fill, right)

	return styles.ThumbLabelStyle(active, focus).Render(bar)
}
