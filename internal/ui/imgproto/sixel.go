package imgproto

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter makes every Sixel placement unique so bubbletea's renderer
// never skips re-emitting an unchanged image after surrounding text moved.
var placeCounter uint64

// Sixel implements Protocol with Sixel graphics. Encoded data is kept per
// image ID and emitted on every placement.
type Sixel struct {
	images map[uint32]string
	cellW  int
	cellH  int
}

// NewSixel creates a Sixel protocol using the terminal's cell size.
func NewSixel() *Sixel {
	w, h := cellSize()
	return &Sixel{
		images: make(map[uint32]string),
		cellW:  w,
		cellH:  h,
	}
}

func (s *Sixel) Name() string { return "sixel" }

func (s *Sixel) Prepare(img image.Image, id uint32, _, _ int) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true
	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}
	s.images[id] = buf.String()
	return "", nil
}

func (s *Sixel) Cells(_ uint32, cols, rows int) string {
	return Blank(cols, rows)
}

func (s *Sixel) Place(id uint32, row, col, _, _ int) string {
	data, ok := s.images[id]
	if !ok {
		return ""
	}

	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)
	return sb.String()
}

func (s *Sixel) Delete(id uint32) string {
	delete(s.images, id)
	return ""
}

// TargetPixelSize leaves one row of margin so an image touching the bottom
// edge never scrolls the terminal.
func (s *Sixel) TargetPixelSize(cols, rows int) (pixelWidth, pixelHeight int) {
	return cols * s.cellW, max(rows-1, 1) * s.cellH
}
