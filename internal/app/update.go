package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/app/popupctl"
	"github.com/llehouerou/vitrine/internal/errmsg"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui/action"
	"github.com/llehouerou/vitrine/internal/ui/helpbindings"
	"github.com/llehouerou/vitrine/internal/ui/mobilestrip"
	"github.com/llehouerou/vitrine/internal/ui/thumbstrip"
	"github.com/llehouerou/vitrine/internal/ui/viewer"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	sync := true
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case viewer.FrameMsg:
		// Redraw only when the zoom crop moved.
		sync = false
		if d := m.desktop(); d != nil {
			sync = d.viewer.HandleFrame()
		}

	case paintedMsg:
		m.graphics.ack(msg.gen)

	case media.LoadedMsg:
		m.handleLoaded(msg)

	case action.Msg:
		cmd = m.handleAction(msg)
	}

	return m, tea.Batch(append([]tea.Cmd{cmd}, m.settle(sync)...)...)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	if mode, switched := m.selector.Evaluate(msg.Width); switched {
		m.focus = FocusViewer
		m.gallery.OnLayoutSwitch(mode)
		m.log.Info("layout mounted",
			"mode", mode.String(),
			"width", msg.Width,
			"breakpoint", m.selector.Breakpoint(),
		)
	}
	m.resize()
}

func (m *Model) handleLoaded(msg media.LoadedMsg) {
	m.store.Resolve(msg)
	if msg.Err != nil {
		m.log.Warn("image load failed", "ref", msg.Ref, "error", msg.Err)
		return
	}
	info := msg.Asset.Info
	m.log.Debug("image loaded",
		"ref", msg.Ref,
		"format", info.Format,
		"width", info.Width,
		"height", info.Height,
		"bytes", info.Bytes,
	)
}

// handleAction routes widget requests. Every slide change goes through the
// gallery controller.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case thumbstrip.Selected:
		m.gallery.SelectSlide(a.Index)
	case viewer.Navigate:
		m.gallery.SelectSlide(a.Index)
	case mobilestrip.Selected:
		m.gallery.SelectSlide(a.Index)
	case helpbindings.Close:
		m.popups.Hide(popupctl.Help)
	}
	return nil
}

// settle runs after every message. It redraws the slide image when sync is
// set, requests the images now needed and reports slide changes.
func (m *Model) settle(sync bool) []tea.Cmd {
	var cmds []tea.Cmd
	if sync {
		if cmd := m.syncGraphics(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.requestImages()...)
	for _, index := range m.changes.indices {
		ref := m.gallery.Images()[index]
		m.log.Info("slide changed", "index", index, "ref", ref)
	}
	if len(m.changes.indices) > 0 {
		cmds = append(cmds, tea.SetWindowTitle(m.windowTitle()))
		m.changes.indices = m.changes.indices[:0]
	}
	return cmds
}

// syncGraphics prepares the slide image and queues the resulting terminal
// commands. Graphics protocols draw above the text layer, so the image is
// removed while a popup is open.
func (m *Model) syncGraphics() tea.Cmd {
	if m.popups.ActivePopup() != popupctl.None {
		return m.graphics.push(m.renderer.Clear())
	}
	s := m.slide()
	if s == nil {
		return nil
	}
	cmd, err := s.Sync()
	if err != nil {
		m.log.Error("image render failed", "error", err)
		m.popups.ShowError(errmsg.Format(errmsg.OpImageRender, err))
	}
	return m.graphics.push(cmd)
}

// requestImages loads the active slide, its neighbours and the thumbnails
// on screen.
func (m *Model) requestImages() []tea.Cmd {
	images := m.gallery.Images()
	active, ok := m.gallery.Active()
	if !ok {
		return nil
	}

	refs := []string{images[active]}
	if active+1 < len(images) {
		refs = append(refs, images[active+1])
	}
	if active > 0 {
		refs = append(refs, images[active-1])
	}
	if d := m.desktop(); d != nil {
		refs = append(refs, d.strip.VisibleRefs()...)
	}

	var cmds []tea.Cmd
	for _, ref := range refs {
		if cmd := m.store.Request(m.ctx, ref); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m Model) windowTitle() string {
	title := m.opts.Title
	if title == "" {
		title = "vitrine"
	}
	if active, ok := m.gallery.Active(); ok {
		return fmt.Sprintf("%s (%d/%d)", title, active+1, m.gallery.Len())
	}
	return title
}
