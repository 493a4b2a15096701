// Package imgproto draws images in the terminal with the Kitty graphics
// protocol, Sixel, or colored half-block characters.
package imgproto

import (
	"image"
	"strings"
	"sync/atomic"
)

// Assumed cell size in pixels when the terminal does not report one.
const (
	defaultCellW = 8
	defaultCellH = 16
)

// Protocol abstracts how an image reaches the terminal.
type Protocol interface {
	// Name identifies the protocol in config and logs.
	Name() string

	// Prepare encodes img for display under id and returns any one-time
	// terminal command (Kitty transmits here; Sixel and Blocks return "").
	Prepare(img image.Image, id uint32, cols, rows int) (string, error)

	// Cells returns the text occupying the image area in the layout.
	// Graphics protocols return blank space; Blocks returns the image itself.
	Cells(id uint32, cols, rows int) string

	// Place returns the sequence drawing the image at the 1-based (row, col)
	// after the layout is written. Inline protocols return "".
	Place(id uint32, row, col, cols, rows int) string

	// Delete releases the image.
	Delete(id uint32) string

	// TargetPixelSize returns the pixel size to resize to for a cols x rows area.
	TargetPixelSize(cols, rows int) (pixelWidth, pixelHeight int)
}

var nextImageID uint32

func newImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// Blank returns cols x rows of spaces for the layout, so lipgloss never
// measures image escape sequences.
func Blank(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat(" ", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
