// Package gallery owns the active slide of a product gallery and keeps the
// mounted widgets in sync with it.
package gallery

import "slices"

// ImageList is an ordered list of opaque image references.
type ImageList []string

// SlideDisplay shows one slide. ShowSlide is called on every selection, even
// when the index did not change, so displays can reset per-slide state.
type SlideDisplay interface {
	ShowSlide(index int)
}

// ThumbnailSync is the controller's non-owning view of a thumbnail strip.
// A strip that reports Mounted() == false is treated as absent.
type ThumbnailSync interface {
	Mounted() bool
	SetActive(index int)
	ScrollIntoView(index int)
}

// Presentation is one mounted layout variant.
type Presentation interface {
	Mode() Mode
	// Display receives slide changes. Never nil.
	Display() SlideDisplay
	// Strip returns the thumbnail strip to bind, or nil when the variant has none.
	Strip() ThumbnailSync
	// Teardown unmounts the variant's widgets.
	Teardown()
}

// Builder constructs a fresh presentation for a mode.
type Builder func(mode Mode, images ImageList) Presentation

// Controller owns the active index and mediates between the thumbnail strip
// and the display of the mounted presentation.
type Controller struct {
	images  ImageList
	active  int // -1 when images is empty
	build   Builder
	current Presentation
	display SlideDisplay
	strip   ThumbnailSync

	listeners []listener // in subscription order
	nextID    int
}

type listener struct {
	id int
	fn func(int)
}

// NewController creates a controller. initial is used for the first mount;
// an out-of-range value falls back to 0.
func NewController(images ImageList, initial int, build Builder) *Controller {
	c := &Controller{
		images:    slices.Clone(images),
		active:    -1,
		build:     build,
	}
	if len(c.images) > 0 {
		c.active = 0
		if initial >= 0 && initial < len(c.images) {
			c.active = initial
		}
	}
	return c
}

// Images returns the image list.
func (c *Controller) Images() ImageList {
	return c.images
}

// Len returns the number of images.
func (c *Controller) Len() int {
	return len(c.images)
}

// Active returns the active index, or false when the list is empty.
func (c *Controller) Active() (int, bool) {
	if c.active < 0 {
		return 0, false
	}
	return c.active, true
}

// Current returns the mounted presentation, or nil before the first layout switch.
func (c *Controller) Current() Presentation {
	return c.current
}

// SelectSlide makes index the active slide. Out-of-range indices and empty
// lists are ignored; they come from stale UI events and are not errors.
// Returns true if the selection was applied.
func (c *Controller) SelectSlide(index int) bool {
	if index < 0 || index >= len(c.images) {
		return false
	}
	prev := c.active
	c.active = index
	c.apply()
	if prev != index {
		c.notify(index)
	}
	return true
}

// BindThumbnailStrip replaces the strip used for synchronization.
// nil disables sync; navigation on the display keeps working.
func (c *Controller) BindThumbnailStrip(strip ThumbnailSync) {
	c.strip = strip
}

// OnLayoutSwitch tears down the mounted presentation and builds one for mode.
// The active index resets to 0 (absent for an empty list), except on the very
// first mount which keeps the initial index.
func (c *Controller) OnLayoutSwitch(mode Mode) Presentation {
	first := c.current == nil
	if c.current != nil {
		c.current.Teardown()
	}
	c.current = nil
	c.display = nil
	c.strip = nil

	prev := c.active
	if !first {
		c.active = -1
		if len(c.images) > 0 {
			c.active = 0
		}
	}

	p := c.build(mode, c.images)
	c.current = p
	c.display = p.Display()
	if strip := p.Strip(); strip != nil {
		c.BindThumbnailStrip(strip)
	}
	c.apply()

	if c.active != prev && c.active >= 0 {
		c.notify(c.active)
	}
	return p
}

// OnChange registers fn to be called with the new index whenever the active
// index changes. The returned func unregisters it.
func (c *Controller) OnChange(fn func(index int)) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() {
		c.listeners = slices.DeleteFunc(c.listeners, func(l listener) bool { return l.id == id })
	}
}

// apply pushes the active index to the display and the bound strip.
func (c *Controller) apply() {
	if c.active < 0 {
		return
	}
	if c.display != nil {
		c.display.ShowSlide(c.active)
	}
	if strip := c.liveStrip(); strip != nil {
		strip.SetActive(c.active)
		strip.ScrollIntoView(c.active)
	}
}

// liveStrip returns the bound strip if it is still mounted.
func (c *Controller) liveStrip() ThumbnailSync {
	if c.strip == nil || !c.strip.Mounted() {
		return nil
	}
	return c.strip
}

func (c *Controller) notify(index int) {
	for _, l := range c.listeners {
		if l.fn != nil {
			l.fn(index)
		}
	}
}
