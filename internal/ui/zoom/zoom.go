// Package zoom implements the pointer-driven magnification overlay of the main viewer.
//
// The overlay is a two-state machine (Idle, Zoomed) holding one focal point for
// the slide currently on screen. Pointer moves are coalesced: PointerMove only
// records the latest position and Flush performs at most one recomputation,
// so callers run Flush once per rendered frame.
package zoom

// Focal point bounds in percent. Keeping the transform origin away from the
// image edges keeps the magnified viewport over source pixels.
const (
	MinPercent = 10.0
	MaxPercent = 90.0
)

// DefaultMagnification is the scale applied while zoomed.
const DefaultMagnification = 2.0

// Point is a focal point in percent of the image box.
type Point struct {
	X, Y float64
}

// Center is the transform origin used while idle.
var Center = Point{X: 50, Y: 50}

// Box is the measured image bounding box in cells.
type Box struct {
	Width, Height int
}

// Valid reports whether the box has been laid out.
func (b Box) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// State is the zoom state of the current slide.
type State struct {
	Active bool
	Focal  Point
}

// Overlay tracks pointer state for the slide currently displayed.
type Overlay struct {
	state         State
	magnification float64
	tracked       bool // a valid focal point was computed since entering

	pending    bool
	pendingX   int
	pendingY   int
	pendingBox Box
}

// New creates an idle overlay. Magnifications <= 1 fall back to DefaultMagnification.
func New(magnification float64) *Overlay {
	if magnification <= 1 {
		magnification = DefaultMagnification
	}
	return &Overlay{
		state:         State{Focal: Center},
		magnification: magnification,
	}
}

// State returns the current zoom state.
func (o *Overlay) State() State {
	return o.state
}

// Active reports whether the overlay is in the Zoomed state.
func (o *Overlay) Active() bool {
	return o.state.Active
}

// Magnification returns the configured zoom factor.
func (o *Overlay) Magnification() float64 {
	return o.magnification
}

// Scale returns the scale to render with: 1.0 while idle or before the first
// valid focal point, the magnification otherwise.
func (o *Overlay) Scale() float64 {
	if o.state.Active && o.tracked {
		return o.magnification
	}
	return 1.0
}

// Origin returns the transform origin to render with.
func (o *Overlay) Origin() Point {
	if o.state.Active && o.tracked {
		return o.state.Focal
	}
	return Center
}

// PointerEnter moves Idle to Zoomed. The focal point starts from center.
func (o *Overlay) PointerEnter() {
	if o.state.Active {
		return
	}
	o.state = State{Active: true, Focal: Center}
	o.tracked = false
}

// PointerMove records the latest pointer position, local to the image box.
// It is ignored while idle. The focal point changes on the next Flush.
func (o *Overlay) PointerMove(x, y int, box Box) {
	if !o.state.Active {
		return
	}
	o.pending = true
	o.pendingX, o.pendingY = x, y
	o.pendingBox = box
}

// Pending reports whether a pointer move awaits Flush.
func (o *Overlay) Pending() bool {
	return o.pending
}

// Flush recomputes the focal point from the latest recorded pointer position.
// It returns true if the focal point changed. A zero-size box skips the
// recomputation and keeps the last valid focal point.
func (o *Overlay) Flush() bool {
	if !o.pending {
		return false
	}
	o.pending = false
	if !o.state.Active || !o.pendingBox.Valid() {
		return false
	}

	focal := Point{
		X: Clamp(Percent(o.pendingX, o.pendingBox.Width)),
		Y: Clamp(Percent(o.pendingY, o.pendingBox.Height)),
	}
	changed := !o.tracked || focal != o.state.Focal
	o.state.Focal = focal
	o.tracked = true
	return changed
}

// PointerLeave moves Zoomed to Idle, dropping the focal point and any pending move.
func (o *Overlay) PointerLeave() {
	o.Reset()
}

// Reset forces the overlay to Idle with a centered origin.
func (o *Overlay) Reset() {
	o.state = State{Focal: Center}
	o.tracked = false
	o.pending = false
}

// Percent converts a local coordinate to a percentage of size.
// size must be positive.
func Percent(local, size int) float64 {
	return 100 * float64(local) / float64(size)
}

// Clamp limits a percentage to [MinPercent, MaxPercent].
func Clamp(v float64) float64 {
	return min(max(v, MinPercent), MaxPercent)
}
