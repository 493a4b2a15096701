package imgproto

import (
	"bytes"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// Frame is one picture to draw.
type Frame struct {
	// Key identifies the pixels, e.g. the media reference plus the crop window.
	Key   string
	Image image.Image
	// Cacheable frames are written to the disk cache after scaling.
	Cacheable bool
}

// Renderer keeps at most one image live in the terminal. It is only used
// from the bubbletea update loop.
type Renderer struct {
	proto Protocol
	cache *Cache

	id   uint32
	key  string
	cols int
	rows int
}

// NewRenderer creates a renderer. A nil protocol disables drawing and a nil
// cache disables frame caching.
func NewRenderer(proto Protocol, cache *Cache) *Renderer {
	return &Renderer{proto: proto, cache: cache}
}

// Show prepares f for a cols x rows cell area and returns the terminal
// commands to write before the next frame: the deletion of the previous
// image and, for Kitty, the transmission of the new one. Showing the same
// key at the same size again returns "".
func (r *Renderer) Show(f Frame, cols, rows int) (string, error) {
	if r.proto == nil || f.Image == nil || cols <= 0 || rows <= 0 {
		return r.Clear(), nil
	}
	if r.id != 0 && f.Key == r.key && cols == r.cols && rows == r.rows {
		return "", nil
	}

	del := r.Clear()

	pw, ph := r.proto.TargetPixelSize(cols, rows)
	scaled := r.scale(f, max(pw, 1), max(ph, 1))

	id := newImageID()
	cmd, err := r.proto.Prepare(scaled, id, cols, rows)
	if err != nil {
		return del, err
	}

	r.id = id
	r.key = f.Key
	r.cols = cols
	r.rows = rows

	return del + cmd, nil
}

func (r *Renderer) scale(f Frame, pw, ph int) image.Image {
	if f.Cacheable && f.Key != "" {
		if data := r.cache.Get(f.Key, pw, ph); data != nil {
			if img, err := png.Decode(bytes.NewReader(data)); err == nil {
				return img
			}
		}
	}

	scaled := resize.Thumbnail(uint(pw), uint(ph), f.Image, resize.Lanczos3) //nolint:gosec // pixel sizes are small

	if f.Cacheable && f.Key != "" && r.cache != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, scaled); err == nil {
			_ = r.cache.Put(f.Key, pw, ph, buf.Bytes()) //nolint:errcheck // best-effort
		}
	}
	return scaled
}

// HasImage reports whether an image is live.
func (r *Renderer) HasImage() bool {
	return r.id != 0
}

// Key returns the key of the live image.
func (r *Renderer) Key() string {
	return r.key
}

// Cells returns the layout text for the live image area.
func (r *Renderer) Cells() string {
	if r.proto == nil || r.id == 0 {
		return Blank(r.cols, r.rows)
	}
	return r.proto.Cells(r.id, r.cols, r.rows)
}

// Place returns the sequence drawing the live image at the 1-based (row, col).
func (r *Renderer) Place(row, col int) string {
	if r.proto == nil || r.id == 0 {
		return ""
	}
	return r.proto.Place(r.id, row, col, r.cols, r.rows)
}

// Clear releases the live image and returns the deletion sequence.
func (r *Renderer) Clear() string {
	if r.id == 0 {
		return ""
	}
	cmd := r.proto.Delete(r.id)
	r.id = 0
	r.key = ""
	r.cols = 0
	r.rows = 0
	return cmd
}
