package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/gallery"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/mobilestrip"
	"github.com/llehouerou/vitrine/internal/ui/thumbstrip"
	"github.com/llehouerou/vitrine/internal/ui/viewer"
)

// slideView is what the app needs from the widget drawing the active slide.
type slideView interface {
	Sync() (string, error)
	Placement() string
	View() string
	HandleAction(a keymap.Action) (tea.Cmd, bool)
}

// builder constructs presentations for the gallery controller.
type builder struct {
	store         *media.Store
	renderer      *imgproto.Renderer
	magnification float64
	interval      time.Duration
	thumbW        int
	thumbH        int
}

func (b *builder) build(mode gallery.Mode, images gallery.ImageList) gallery.Presentation {
	if mode == gallery.ModeMobile {
		return &mobilePresentation{
			strip: mobilestrip.New(images, b.store, b.renderer),
		}
	}
	return &desktopPresentation{
		viewer: viewer.New(images, b.store, b.renderer, b.magnification, b.interval),
		strip:  thumbstrip.New(images, b.store, b.thumbW, b.thumbH),
	}
}

// desktopPresentation is the main viewer above the thumbnail strip.
type desktopPresentation struct {
	viewer *viewer.Model
	strip  *thumbstrip.Model
}

func (p *desktopPresentation) Mode() gallery.Mode { return gallery.ModeDesktop }
func (p *desktopPresentation) Display() gallery.SlideDisplay { return p.viewer }
func (p *desktopPresentation) Strip() gallery.ThumbnailSync { return p.strip }

// Teardown unmounts the strip and drops any zoom state.
func (p *desktopPresentation) Teardown() {
	p.strip.Teardown()
	p.viewer.Overlay().Reset()
}

// mobilePresentation is the paginated strip alone.
type mobilePresentation struct {
	strip *mobilestrip.Model
}

func (p *mobilePresentation) Mode() gallery.Mode { return gallery.ModeMobile }
func (p *mobilePresentation) Display() gallery.SlideDisplay { return p.strip }
func (p *mobilePresentation) Strip() gallery.ThumbnailSync { return nil }
func (p *mobilePresentation) Teardown() {}

// desktop returns the mounted desktop presentation, or nil.
func (m Model) desktop() *desktopPresentation {
	p, _ := m.gallery.Current().(*desktopPresentation)
	return p
}

// mobile returns the mounted mobile presentation, or nil.
func (m Model) mobile() *mobilePresentation {
	p, _ := m.gallery.Current().(*mobilePresentation)
	return p
}

// slide returns the widget drawing the active slide, or nil before mount.
func (m Model) slide() slideView {
	if d := m.desktop(); d != nil {
		return d.viewer
	}
	if mp := m.mobile(); mp != nil {
		return mp.strip
	}
	return nil
}
