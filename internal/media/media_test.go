package media

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255}) //nolint:gosec // small test values
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := testPNG(t, 6, 4)

	asset, err := Decode("/shop/sku-1/front.png", data)
	require.NoError(t, err)

	assert.Equal(t, "/shop/sku-1/front.png", asset.Ref)
	assert.Equal(t, "front.png", asset.Info.Name)
	assert.Equal(t, "png", asset.Info.Format)
	assert.Equal(t, 6, asset.Info.Width)
	assert.Equal(t, 4, asset.Info.Height)
	assert.Equal(t, int64(len(data)), asset.Info.Bytes)
	assert.Empty(t, asset.Info.Camera)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("broken.jpg", []byte("not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding image")
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h pixels.
// DecodeConfig needs nothing more.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestDecode_TooManyPixels(t *testing.T) {
	_, err := Decode("huge.png", pngHeader(20000, 20000))

	require.ErrorIs(t, err, ErrTooLarge)
	assert.Contains(t, err.Error(), "20000x20000")
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "back.png")
	require.NoError(t, os.WriteFile(path, testPNG(t, 3, 3), 0o600))

	asset, err := FileLoader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, asset.Info.Width)

	_, err = FileLoader{}.Load(context.Background(), filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHTTPLoader(t *testing.T) {
	data := testPNG(t, 5, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	loader := &HTTPLoader{Client: srv.Client()}

	asset, err := loader.Load(context.Background(), srv.URL+"/media/side.png?v=2")
	require.NoError(t, err)
	assert.Equal(t, "side.png", asset.Info.Name)
	assert.Equal(t, 5, asset.Info.Width)

	_, err = loader.Load(context.Background(), srv.URL+"/missing.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

type stubLoader struct {
	calls []string
}

func (s *stubLoader) Load(_ context.Context, ref string) (*Asset, error) {
	s.calls = append(s.calls, ref)
	return &Asset{Ref: ref}, nil
}

func TestRouter(t *testing.T) {
	file, remote := &stubLoader{}, &stubLoader{}
	r := &Router{File: file, HTTP: remote}

	_, _ = r.Load(context.Background(), "/tmp/a.png")
	_, _ = r.Load(context.Background(), "https://cdn.example.com/b.png")
	_, _ = r.Load(context.Background(), "http://cdn.example.com/c.png")

	assert.Equal(t, []string{"/tmp/a.png"}, file.calls)
	assert.Equal(t, []string{"https://cdn.example.com/b.png", "http://cdn.example.com/c.png"}, remote.calls)
}

func TestName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"/a/b/c.jpg", "c.jpg"},
		{"c.jpg", "c.jpg"},
		{"https://cdn.example.com/p/1/front.webp", "front.webp"},
		{"https://cdn.example.com/p/1/front.webp?w=800#x", "front.webp"},
		{"https://cdn.example.com/p/1/", "1"},
	}

	for _, tt := range tests {
		if got := Name(tt.ref); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestOrient(t *testing.T) {
	// 3x2 image with a marker at the top-left pixel.
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	marker := color.RGBA{R: 255, A: 255}
	src.SetRGBA(0, 0, marker)

	tests := []struct {
		orientation int
		wantW       int
		wantH       int
		markerX     int
		markerY     int
	}{
		{1, 3, 2, 0, 0},
		{2, 3, 2, 2, 0},
		{3, 3, 2, 2, 1},
		{4, 3, 2, 0, 1},
		{5, 2, 3, 0, 0},
		{6, 2, 3, 1, 0},
		{7, 2, 3, 1, 2},
		{8, 2, 3, 0, 2},
		{42, 3, 2, 0, 0},
	}

	for _, tt := range tests {
		got := Orient(src, tt.orientation)
		b := got.Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("orientation %d: size %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			continue
		}
		r, _, _, _ := got.At(tt.markerX, tt.markerY).RGBA()
		if r>>8 != 255 {
			t.Errorf("orientation %d: marker not at (%d,%d)", tt.orientation, tt.markerX, tt.markerY)
		}
	}
}

func TestStore(t *testing.T) {
	loader := &stubLoader{}
	s := NewStore(loader)
	ctx := context.Background()

	assert.Nil(t, s.Get("a"))

	cmd := s.Request(ctx, "a")
	require.NotNil(t, cmd)
	assert.True(t, s.Get("a").Pending)
	assert.Nil(t, s.Request(ctx, "a"), "in-flight refs are not requested twice")

	msg, ok := cmd().(LoadedMsg)
	require.True(t, ok)
	s.Resolve(msg)

	assert.False(t, s.Get("a").Pending)
	assert.NotNil(t, s.Get("a").Asset)
	assert.Nil(t, s.Request(ctx, "a"), "loaded refs are not requested again")

	s.Forget("a")
	assert.NotNil(t, s.Request(ctx, "a"))

	assert.Nil(t, s.Request(ctx, ""))

	var nilStore *Store
	assert.Nil(t, nilStore.Get("a"))
	assert.Nil(t, nilStore.Failed())
}

func TestStore_Failed(t *testing.T) {
	s := NewStore(nil)
	s.Resolve(LoadedMsg{Ref: "c", Err: errors.New("gone")})
	s.Resolve(LoadedMsg{Ref: "b", Asset: &Asset{Ref: "b"}})
	s.Resolve(LoadedMsg{Ref: "a", Err: errors.New("timeout")})

	assert.Equal(t, []string{"a", "c"}, s.Failed())

	s.Forget("a")
	assert.Equal(t, []string{"c"}, s.Failed())
}
