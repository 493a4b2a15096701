// Package app is the root bubbletea model hosting the product gallery.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vitrine/internal/app/popupctl"
	"github.com/llehouerou/vitrine/internal/gallery"
	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/logging"
	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/layout"
	"github.com/llehouerou/vitrine/internal/ui/zoom"
)

// Options configures the application model.
type Options struct {
	Title        string
	Images       gallery.ImageList
	InitialIndex int

	Breakpoint    int
	Magnification float64
	FrameInterval time.Duration
	ThumbWidth    int
	ThumbHeight   int

	// Loader fetches images. Defaults to media.NewRouter().
	Loader media.Loader
	// Renderer draws the slide image. Defaults to half-blocks.
	Renderer *imgproto.Renderer
	Logger   *slog.Logger
}

func (o *Options) applyDefaults() {
	if o.Magnification <= 1 {
		o.Magnification = zoom.DefaultMagnification
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = 16 * time.Millisecond
	}
	if o.ThumbWidth <= 0 {
		o.ThumbWidth = layout.DefaultThumbWidth
	}
	if o.ThumbHeight <= 0 {
		o.ThumbHeight = layout.DefaultThumbHeight
	}
	if o.Loader == nil {
		o.Loader = media.NewRouter()
	}
	if o.Renderer == nil {
		o.Renderer = imgproto.NewRenderer(imgproto.NewBlocks(), nil)
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

// FocusTarget is the desktop widget receiving navigation keys.
type FocusTarget int

const (
	FocusViewer FocusTarget = iota
	FocusStrip
)

// slideChanges collects active-index notifications until the update loop
// turns them into commands.
type slideChanges struct {
	indices []int
}

// Model is the root application model.
type Model struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	store    *media.Store
	renderer *imgproto.Renderer
	selector *gallery.Selector
	gallery  *gallery.Controller
	resolver *keymap.Resolver
	popups   *popupctl.Manager
	log      *slog.Logger

	changes *slideChanges
	focus   FocusTarget
	width   int
	height  int

	graphics *graphicsQueue
}

// New creates the application model. Nothing is mounted until the first
// tea.WindowSizeMsg selects a layout.
func New(opts Options) Model {
	opts.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		store:    media.NewStore(opts.Loader),
		renderer: opts.Renderer,
		selector: gallery.NewSelector(opts.Breakpoint),
		resolver: keymap.Default(),
		popups:   popupctl.New(),
		log:      opts.Logger,
		changes:  &slideChanges{},
		graphics: &graphicsQueue{},
	}

	b := &builder{
		store:         m.store,
		renderer:      m.renderer,
		magnification: opts.Magnification,
		interval:      opts.FrameInterval,
		thumbW:        opts.ThumbWidth,
		thumbH:        opts.ThumbHeight,
	}
	m.gallery = gallery.NewController(opts.Images, opts.InitialIndex, b.build)

	changes := m.changes
	m.gallery.OnChange(func(index int) {
		changes.indices = append(changes.indices, index)
	})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.windowTitle())
}

// Gallery returns the gallery controller.
func (m Model) Gallery() *gallery.Controller {
	return m.gallery
}

// Focus returns the focused desktop widget.
func (m Model) Focus() FocusTarget {
	return m.focus
}

// Close cancels in-flight image loads.
func (m Model) Close() {
	m.cancel()
}
