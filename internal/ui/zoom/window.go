package zoom

import "image"

// Window is a rectangle in fractions [0,1] of the source image.
type Window struct {
	X, Y, W, H float64
}

// Full is the window covering the entire image.
var Full = Window{W: 1, H: 1}

// VisibleWindow returns the part of the source that stays visible when the
// image is scaled by scale around origin. For scale <= 1 it returns Full.
//
// A point p maps to origin + (p-origin)*scale, so the visible source range on
// each axis is [o - o/s, o + (1-o)/s], which lies inside [0,1] for any origin.
func VisibleWindow(origin Point, scale float64) Window {
	if scale <= 1 {
		return Full
	}
	ox := origin.X / 100
	oy := origin.Y / 100
	return Window{
		X: ox * (1 - 1/scale),
		Y: oy * (1 - 1/scale),
		W: 1 / scale,
		H: 1 / scale,
	}
}

// Rect maps the window onto bounds, keeping at least one pixel per axis.
func (w Window) Rect(bounds image.Rectangle) image.Rectangle {
	bw := float64(bounds.Dx())
	bh := float64(bounds.Dy())
	x0 := bounds.Min.X + int(w.X*bw)
	y0 := bounds.Min.Y + int(w.Y*bh)
	x1 := bounds.Min.X + int((w.X+w.W)*bw+0.5)
	y1 := bounds.Min.Y + int((w.Y+w.H)*bh+0.5)
	x1 = min(max(x1, x0+1), bounds.Max.X)
	y1 = min(max(y1, y0+1), bounds.Max.Y)
	return image.Rect(x0, y0, x1, y1)
}
