// Package viewer implements the main slide viewer of the desktop gallery and
// hosts its zoom overlay.
package viewer

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/layout"
	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/slide"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/zoom"
)

// Source supplies load state for media references.
type Source interface {
	Get(ref string) *media.Entry
}

// captionHeight is the row under the image area.
const captionHeight = 1

// Model is the main viewer. Its width and height are the outer panel size,
// including the border.
type Model struct {
	ui.Base

	refs     []string
	source   Source
	renderer *imgproto.Renderer
	overlay  *zoom.Overlay
	interval time.Duration

	index   int // -1 until the first ShowSlide, and for an empty list
	ticking bool
}

// New creates a viewer over refs. renderer draws the slide image and may be
// shared with other presentations; only the mounted one syncs it.
func New(
	refs []string,
	source Source,
	renderer *imgproto.Renderer,
	magnification float64,
	interval time.Duration,
) *Model {
	return &Model{
		refs:     refs,
		source:   source,
		renderer: renderer,
		overlay:  zoom.New(magnification),
		interval: interval,
		index:    -1,
	}
}

// Index returns the displayed slide, or -1.
func (m *Model) Index() int {
	return m.index
}

// Overlay returns the zoom overlay.
func (m *Model) Overlay() *zoom.Overlay {
	return m.overlay
}

// ShowSlide displays the slide at index. The zoom overlay is reset on every
// call, including when index is already displayed.
func (m *Model) ShowSlide(index int) {
	m.overlay.Reset()
	if index < 0 || index >= len(m.refs) {
		return
	}
	m.index = index
}

// Step returns the slide delta positions away, clamped to the list. The
// boolean is false when the list is empty or the target is the current slide.
func (m *Model) Step(delta int) (int, bool) {
	if len(m.refs) == 0 {
		return 0, false
	}
	target := min(max(m.index+delta, 0), len(m.refs)-1)
	return target, target != m.index
}

func (m *Model) jump(target int) (int, bool) {
	if len(m.refs) == 0 {
		return 0, false
	}
	return target, target != m.index
}

// HandleAction applies a navigation action. Moves emit Navigate.
func (m *Model) HandleAction(a keymap.Action) (tea.Cmd, bool) {
	var (
		target int
		ok     bool
	)
	switch a {
	case keymap.ActionPrev:
		target, ok = m.Step(-1)
	case keymap.ActionNext:
		target, ok = m.Step(1)
	case keymap.ActionFirst:
		target, ok = m.jump(0)
	case keymap.ActionLast:
		target, ok = m.jump(len(m.refs) - 1)
	default:
		return nil, false
	}
	if !ok {
		return nil, true
	}
	return func() tea.Msg { return ActionMsg(Navigate{Index: target}) }, true
}

// asset returns the decoded image of the displayed slide, or nil.
func (m *Model) asset() *media.Asset {
	if m.index < 0 || m.source == nil {
		return nil
	}
	if e := m.source.Get(m.refs[m.index]); e != nil {
		return e.Asset
	}
	return nil
}

// area returns the image area in screen cells.
func (m *Model) area() layout.Rect {
	row, col := m.Origin()
	w, h := m.Size()
	inner := layout.Rect{Row: row, Col: col, Width: w, Height: h}.Inset(layout.BorderSize)
	inner.Height = max(inner.Height-captionHeight, 0)
	return inner
}

// ImageBox returns the on-screen box of the displayed image. It is empty when
// no image is drawn.
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

// HandleMouse feeds pointer motion to the zoom overlay. Returns a frame tick
// command when a move is waiting to be applied.
func (m *Model) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	box := m.ImageBox()
	if !box.Contains(msg.X, msg.Y) {
		if m.overlay.Active() {
			m.overlay.PointerLeave()
		}
		return nil
	}

	if !m.overlay.Active() {
		m.overlay.PointerEnter()
	}
	m.overlay.PointerMove(msg.X-box.Col, msg.Y-box.Row, zoom.Box{Width: box.Width, Height: box.Height})
	return m.scheduleFrame()
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking || !m.overlay.Pending() {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return FrameMsg{} })
}

// HandleFrame applies the latest pointer move and reports whether the
// rendered crop changed.
func (m *Model) HandleFrame() bool {
	m.ticking = false
	return m.overlay.Flush()
}

// Sync renders the displayed slide through the renderer and returns the
// terminal commands to write before the next view.
func (m *Model) Sync() (string, error) {
	a := m.asset()
	box := m.ImageBox()
	if a == nil || box.Empty() {
		return m.renderer.Clear(), nil
	}
	win := zoom.VisibleWindow(m.overlay.Origin(), m.overlay.Scale())
	return m.renderer.Show(slide.Frame(a, win), box.Width, box.Height)
}

// Placement returns the sequence drawing the image at its box, for graphics
// protocols that draw after the text layout.
func (m *Model) Placement() string {
	box := m.ImageBox()
	if box.Empty() || !m.renderer.HasImage() {
		return ""
	}
	return m.renderer.Place(box.Row+1, box.Col+1)
}

// View renders the viewer panel.
func (m *Model) View() string {
	w, h := m.Size()
	if w < 2*layout.BorderSize || h < 2*layout.BorderSize {
		return ""
	}
	innerW, innerH := w-2*layout.BorderSize, h-2*layout.BorderSize
	area := m.area()

	var body string
	switch {
	case len(m.refs) == 0:
		body = slide.Empty(innerW, innerH)
	case area.Height < ui.MinImageRows:
		body = m.caption(innerW)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.image(area), m.caption(innerW))
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(innerW).
		Height(innerH).
		MaxHeight(h).
		Render(body)
}

func (m *Model) image(area layout.Rect) string {
	if m.index < 0 {
		return imgproto.Blank(area.Width, area.Height)
	}
	ref := m.refs[m.index]
	box := m.ImageBox()
	if box.Empty() || !m.renderer.HasImage() {
		var entry *media.Entry
		if m.source != nil {
			entry = m.source.Get(ref)
		}
		return slide.Placeholder(entry, media.Name(ref), area.Width, area.Height)
	}

	cells := m.renderer.Cells()
	top := strings.Repeat("\n", box.Row-area.Row)
	left := strings.Repeat(" ", box.Col-area.Col)
	lines := strings.Split(cells, "\n")
	for i, l := range lines {
		lines[i] = left + l
	}
	return lipgloss.NewStyle().
		Width(area.Width).
		Height(area.Height).
		Render(top + strings.Join(lines, "\n"))
}

// caption renders the name, position and metadata of the displayed slide.
func (m *Model) caption(width int) string {
	if m.index < 0 {
		return ""
	}
	t := styles.T().S()
	ref := m.refs[m.index]
	left := t.Title.Render(render.Truncate(media.Name(ref), max(width/2, 1)))

	parts := []string{fmt.Sprintf("%d/%d", m.index+1, len(m.refs))}
	if a := m.asset(); a != nil {
		parts = append(parts, fmt.Sprintf("%d×%d", a.Info.Width, a.Info.Height))
		if a.Info.Bytes > 0 {
			parts = append(parts, humanize.Bytes(uint64(a.Info.Bytes))) //nolint:gosec // sizes are non-negative
		}
		if a.Info.Camera != "" {
			parts = append(parts, a.Info.Camera)
		}
	}
	if m.overlay.Scale() > 1 {
		parts = append(parts, fmt.Sprintf("zoom %g×", m.overlay.Magnification()))
	}
	right := t.Muted.Render(render.Truncate(strings.Join(parts, " · "), max(width-lipgloss.Width(left)-1, 0)))

	return render.Row(left, right, width)
}
