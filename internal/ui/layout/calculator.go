// Package layout provides pure functions for gallery dimension calculations.
package layout

// DefaultBreakpoint is the terminal width at or above which the desktop
// presentation is used.
const DefaultBreakpoint = 100

// Fixed heights shared by both presentations.
const (
	HeaderHeight    = 1
	FooterHeight    = 1
	IndicatorHeight = 1
	BorderSize      = 1 // one cell of panel border on each side
)

// Thumbnail defaults in cells.
const (
	DefaultThumbWidth  = 12
	DefaultThumbHeight = 4
	ThumbGap           = 1
)

// Rect is a screen rectangle in cells. Row and Col are 0-based.
type Rect struct {
	Row, Col      int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Col && x < r.Col+r.Width && y >= r.Row && y < r.Row+r.Height
}

// Inset shrinks r by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{
		Row:    r.Row + n,
		Col:    r.Col + n,
		Width:  max(r.Width-2*n, 0),
		Height: max(r.Height-2*n, 0),
	}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// IsMobile reports whether width falls below breakpoint.
func IsMobile(width, breakpoint int) bool {
	return width < breakpoint
}

// StripHeight is the height of the thumbnail strip panel: border, thumbnails
// and one label row.
func StripHeight(thumbHeight int) int {
	return thumbHeight + 1 + 2*BorderSize
}

// Desktop holds the regions of the desktop presentation.
type Desktop struct {
	Viewer Rect // bordered viewer panel
	Strip  Rect // bordered thumbnail strip panel
}

// DesktopRegions splits the window between the viewer and the thumbnail strip.
// The strip is dropped (zero height) when the window is too short for both.
func DesktopRegions(width, height, thumbHeight int) Desktop {
	content := max(height-HeaderHeight-FooterHeight, 0)
	strip := StripHeight(thumbHeight)
	if content-strip < 2*BorderSize+1 {
		strip = 0
	}
	return Desktop{
		Viewer: Rect{Row: HeaderHeight, Width: width, Height: content - strip},
		Strip:  Rect{Row: HeaderHeight + content - strip, Width: width, Height: strip},
	}
}

// MobileRegion returns the image region of the mobile presentation. The
// position indicator sits on the row just below it.
func MobileRegion(width, height int) Rect {
	content := max(height-HeaderHeight-FooterHeight-IndicatorHeight, 0)
	return Rect{Row: HeaderHeight, Width: width, Height: content}
}

// VisibleThumbs returns how many thumbnails fit in a strip of the given outer width.
func VisibleThumbs(stripWidth, thumbWidth int) int {
	inner := stripWidth - 2*BorderSize
	if inner <= 0 || thumbWidth <= 0 {
		return 0
	}
	return max((inner+ThumbGap)/(thumbWidth+ThumbGap), 0)
}

// FitAspect returns the largest cells box with the pixel aspect ratio of
// imgW x imgH that fits in maxCols x maxRows. Terminal cells are assumed to
// be twice as tall as wide.
func FitAspect(imgW, imgH, maxCols, maxRows int) (cols, rows int) {
	if imgW <= 0 || imgH <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	// cols / (2*rows) == imgW / imgH
	cols = maxCols
	rows = cols * imgH / (imgW * 2)
	if rows > maxRows {
		rows = maxRows
		cols = rows * imgW * 2 / imgH
	}
	return max(min(cols, maxCols), 1), max(min(rows, maxRows), 1)
}
