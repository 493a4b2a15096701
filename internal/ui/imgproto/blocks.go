package imgproto

import (
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/nfnt/resize"
)

// upperHalf draws the top pixel as foreground and the bottom pixel as background.
const upperHalf = "▀"

// Blocks implements Protocol with truecolor half-block characters. It works
// on any terminal and is what thumbnails always use.
type Blocks struct {
	rendered map[uint32]string
}

// NewBlocks creates a half-block protocol.
func NewBlocks() *Blocks {
	return &Blocks{rendered: make(map[uint32]string)}
}

func (b *Blocks) Name() string { return "blocks" }

func (b *Blocks) Prepare(img image.Image, id uint32, cols, rows int) (string, error) {
	b.rendered[id] = RenderBlocks(img, cols, rows)
	return "", nil
}

func (b *Blocks) Cells(id uint32, cols, rows int) string {
	if s, ok := b.rendered[id]; ok {
		return s
	}
	return Blank(cols, rows)
}

func (b *Blocks) Place(uint32, int, int, int, int) string { return "" }

func (b *Blocks) Delete(id uint32) string {
	delete(b.rendered, id)
	return ""
}

// TargetPixelSize maps each cell to one pixel wide and two pixels tall.
func (b *Blocks) TargetPixelSize(cols, rows int) (pixelWidth, pixelHeight int) {
	return cols, rows * 2
}

// RenderBlocks scales img to exactly cols x rows cells and renders it as
// half-block lines.
func RenderBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return Blank(cols, rows)
	}

	scaled := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear) //nolint:gosec // cell counts are small
	bounds := scaled.Bounds()
	p := termenv.TrueColor

	lines := make([]string, rows)
	var sb strings.Builder
	for y := range rows {
		sb.Reset()
		for x := range cols {
			top := blockColor(scaled.At(bounds.Min.X+x, bounds.Min.Y+2*y))
			bottom := blockColor(scaled.At(bounds.Min.X+x, bounds.Min.Y+2*y+1))
			sb.WriteString(p.String(upperHalf).
				Foreground(p.Color(top.Hex())).
				Background(p.Color(bottom.Hex())).
				String())
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// blockColor flattens c onto black.
func blockColor(c color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return colorful.Color{}
	}
	_, _, _, a := c.RGBA()
	if a == 0xffff {
		return cf
	}
	return colorful.Color{}.BlendRgb(cf, float64(a)/0xffff)
}
