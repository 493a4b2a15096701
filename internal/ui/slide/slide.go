// Package slide holds what the viewer and the mobile strip share to draw one
// slide: the fitted image box, the frame to render and the placeholders.
package slide

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/media"
	"github.com/llehouerou/vitrine/internal/ui/imgproto"
	"github.com/llehouerou/vitrine/internal/ui/layout"
	"github.com/llehouerou/vitrine/internal/ui/render"
	"github.com/llehouerou/vitrine/internal/ui/styles"
	"github.com/llehouerou/vitrine/internal/ui/zoom"
)

// EmptyText is shown when the gallery has no images.
const EmptyText = "No images"

// Box returns the image box for asset inside an area of areaW x areaH cells,
// relative to the area's top-left corner. The box keeps the image aspect
// ratio and is centered. It is empty when nothing can be drawn.
func Box(asset *media.Asset, areaW, areaH int) layout.Rect {
	if asset == nil || asset.Image == nil {
		return layout.Rect{}
	}
	b := asset.Image.Bounds()
	cols, rows := layout.FitAspect(b.Dx(), b.Dy(), areaW, areaH)
	if cols == 0 || rows == 0 {
		return layout.Rect{}
	}
	return layout.Rect{
		Row:    (areaH - rows) / 2,
		Col:    (areaW - cols) / 2,
		Width:  cols,
		Height: rows,
	}
}

// Frame returns the frame for asset seen through win. Only the full image is
// cacheable; zoomed crops change with every pointer move.
func Frame(asset *media.Asset, win zoom.Window) imgproto.Frame {
	if win == zoom.Full {
		return imgproto.Frame{Key: asset.Ref, Image: asset.Image, Cacheable: true}
	}
	r := win.Rect(asset.Image.Bounds())
	return imgproto.Frame{
		Key:   fmt.Sprintf("%s#%d,%d,%d,%d", asset.Ref, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y),
		Image: Crop(asset.Image, r),
	}
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the part of img inside r.
func Crop(img image.Image, r image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// Placeholder renders the text shown instead of an image in a w x h area:
// the error for a failed load, a loading hint otherwise.
func Placeholder(entry *media.Entry, name string, w, h int) string {
	t := styles.T().S()
	var text string
	switch {
	case entry != nil && entry.Err != nil:
		text = t.Error.Render(render.Truncate("✕ Could not load "+name, w))
	case entry != nil && entry.Pending:
		text = t.Placeholder.Render(render.Truncate("Loading "+name+"...", w))
	default:
		text = t.Placeholder.Render(render.Truncate(name, w))
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, text)
}

// Empty renders the empty-gallery placeholder in a w x h area.
func Empty(w, h int) string {
	text := styles.T().S().Placeholder.Render(render.Truncate(EmptyText, w))
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, text)
}
