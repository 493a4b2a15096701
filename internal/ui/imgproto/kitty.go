package imgproto

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"
)

// Max base64 payload per Kitty chunk.
const kittyChunkSize = 4096

// Kitty implements Protocol with the Kitty graphics protocol. Images are
// transmitted once and then placed by ID.
type Kitty struct {
	cellW int
	cellH int
}

// NewKitty creates a Kitty protocol using the terminal's cell size.
func NewKitty() *Kitty {
	w, h := cellSize()
	return &Kitty{cellW: w, cellH: h}
}

func (k *Kitty) Name() string { return "kitty" }

func (k *Kitty) Prepare(img image.Image, id uint32, _, _ int) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return TransmitPNG(buf.Bytes(), id), nil
}

func (k *Kitty) Cells(_ uint32, cols, rows int) string {
	return Blank(cols, rows)
}

func (k *Kitty) Place(id uint32, row, col, cols, rows int) string {
	return PlaceImage(id, row, col, cols, rows)
}

func (k *Kitty) Delete(id uint32) string {
	return DeleteImage(id)
}

func (k *Kitty) TargetPixelSize(cols, rows int) (pixelWidth, pixelHeight int) {
	return cols * k.cellW, rows * k.cellH
}

// TransmitPNG returns the chunked transmit-only (a=t) sequence for
// pre-encoded PNG data.
func TransmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// PlaceImage displays a transmitted image at the 1-based (row, col), sized
// in cells. A fixed placement ID makes each placement replace the last.
func PlaceImage(id uint32, row, col, cols, rows int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, cols, rows, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// DeleteImage frees a transmitted image and all of its placements.
func DeleteImage(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2;%s", escStart, id, escEnd)
}
