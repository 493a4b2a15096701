// Package media loads and decodes the images referenced by a gallery.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxImageBytes bounds how much data is read for a single image.
const MaxImageBytes = 64 << 20

// MaxImagePixels bounds the decoded size of a single image.
const MaxImagePixels = 64 << 20

// ErrTooLarge is returned when an image exceeds MaxImageBytes or MaxImagePixels.
var ErrTooLarge = errors.New("image too large")

// Info holds metadata about a decoded image.
type Info struct {
	Name   string
	Width  int
	Height int
	Bytes  int64
	Format string
	Camera string
}

// Asset is a decoded image ready for display.
type Asset struct {
	Ref   string
	Image image.Image
	Info  Info
}

// Loader fetches and decodes an image reference.
type Loader interface {
	Load(ctx context.Context, ref string) (*Asset, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// Load reads and decodes the file at ref.
func (FileLoader) Load(_ context.Context, ref string) (*Asset, error) {
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f)
	if err != nil {
		return nil, err
	}
	return Decode(ref, data)
}

// HTTPLoader loads images over http(s).
type HTTPLoader struct {
	Client *http.Client
}

// NewHTTPLoader creates a loader with a request timeout.
func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

// Load downloads and decodes the image at ref.
func (l *HTTPLoader) Load(ctx context.Context, ref string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: unexpected status %s", resp.Status)
	}

	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, err
	}
	return Decode(ref, data)
}

// Router dispatches references to the file or http loader by scheme.
type Router struct {
	File Loader
	HTTP Loader
}

// NewRouter creates a router with default loaders.
func NewRouter() *Router {
	return &Router{
		File: FileLoader{},
		HTTP: NewHTTPLoader(30 * time.Second),
	}
}

// Load routes ref to the matching loader.
func (r *Router) Load(ctx context.Context, ref string) (*Asset, error) {
	if IsRemote(ref) {
		return r.HTTP.Load(ctx, ref)
	}
	return r.File.Load(ctx, ref)
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Name returns a short display name for ref.
func Name(ref string) string {
	if IsRemote(ref) {
		ref = strings.TrimRight(ref, "/")
		if i := strings.LastIndexByte(ref, '/'); i >= 0 {
			name := ref[i+1:]
			if q := strings.IndexAny(name, "?#"); q >= 0 {
				name = name[:q]
			}
			return name
		}
		return ref
	}
	return filepath.Base(ref)
}

// Decode decodes image data, applying the EXIF orientation when present.
func Decode(ref string, data []byte) (*Asset, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	info := Info{
		Name:   Name(ref),
		Bytes:  int64(len(data)),
		Format: format,
	}

	// EXIF is optional; most PNG/GIF/WebP files have none.
	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		if tag, err := x.Get(exif.Model); err == nil {
			if model, err := tag.StringVal(); err == nil {
				info.Camera = strings.TrimSpace(model)
			}
		}
		if tag, err := x.Get(exif.Orientation); err == nil {
			if o, err := tag.Int(0); err == nil {
				img = Orient(img, o)
			}
		}
	}

	b := img.Bounds()
	info.Width, info.Height = b.Dx(), b.Dy()

	return &Asset{Ref: ref, Image: img, Info: info}, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if len(data) > MaxImageBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
