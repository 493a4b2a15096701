package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vitrine/internal/db"
)

func openTest(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(db.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSaveProduct_RoundTrip(t *testing.T) {
	c := openTest(t)

	in := Product{
		SKU:         "CHAIR-01",
		Title:       "Oak chair",
		Description: "Solid oak",
		Media:       []string{"b.jpg", "a.jpg", "https://example.com/c.png"},
	}
	require.NoError(t, c.SaveProduct(in))

	got, err := c.Product("CHAIR-01")

	require.NoError(t, err)
	assert.Equal(t, in, *got)
}

func TestSaveProduct_ReplacesMedia(t *testing.T) {
	c := openTest(t)
	require.NoError(t, c.SaveProduct(Product{SKU: "X", Title: "First", Media: []string{"1", "2", "3"}}))

	require.NoError(t, c.SaveProduct(Product{SKU: "X", Title: "Second", Media: []string{"9"}}))

	got, err := c.Product("X")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, []string{"9"}, got.Media)
	assert.Empty(t, got.Description)
}

func TestSaveProduct_Validation(t *testing.T) {
	c := openTest(t)

	assert.Error(t, c.SaveProduct(Product{SKU: "  "}))

	require.NoError(t, c.SaveProduct(Product{SKU: "NOTITLE"}))
	got, err := c.Product("NOTITLE")
	require.NoError(t, err)
	assert.Equal(t, "NOTITLE", got.Title, "title defaults to the SKU")
	assert.Empty(t, got.Media)
}

func TestProduct_NotFound(t *testing.T) {
	c := openTest(t)

	_, err := c.Product("missing")

	assert.True(t, errors.Is(err, ErrProductNotFound))
}

func TestProduct_TrimsSKU(t *testing.T) {
	c := openTest(t)
	require.NoError(t, c.SaveProduct(Product{SKU: " X ", Media: []string{"1"}}))

	got, err := c.Product(" X ")
	require.NoError(t, err)
	assert.Equal(t, "X", got.SKU)

	got, err = c.Product("X\t")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got.Media)

	require.NoError(t, c.DeleteProduct("  X"))
	_, err = c.Product("X")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProducts(t *testing.T) {
	c := openTest(t)
	require.NoError(t, c.SaveProduct(Product{SKU: "b", Title: "B", Media: []string{"1", "2"}}))
	require.NoError(t, c.SaveProduct(Product{SKU: "A", Title: "A"}))

	got, err := c.Products()

	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{SKU: "A", Title: "A", MediaCount: 0},
		{SKU: "b", Title: "B", MediaCount: 2},
	}, got)
}

func TestDeleteProduct(t *testing.T) {
	c := openTest(t)
	require.NoError(t, c.SaveProduct(Product{SKU: "X", Media: []string{"1"}}))

	require.NoError(t, c.DeleteProduct("X"))

	_, err := c.Product("X")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, c.DeleteProduct("X"), ErrProductNotFound)

	var n int
	require.NoError(t, c.db.QueryRow(`SELECT COUNT(*) FROM product_media`).Scan(&n))
	assert.Zero(t, n, "media rows are removed with the product")
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "catalog.db")
	c, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, c.SaveProduct(Product{SKU: "P", Media: []string{"x.png"}}))
	require.NoError(t, c.Close())

	c, err = Open(path)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Product("P")
	require.NoError(t, err)
	assert.Equal(t, []string{"x.png"}, got.Media)
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "b.PNG", "a.jpg", "notes.txt", ".hidden.png", "C.webp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	got, err := ScanDir(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "C.webp"),
	}, got)
}

func TestScanDir_Missing(t *testing.T) {
	_, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestResolveArgs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "2.png", "1.png")
	single := filepath.Join(t.TempDir(), "single.jpg")
	require.NoError(t, os.WriteFile(single, []byte("x"), 0o644))

	got, err := ResolveArgs([]string{single, "https://example.com/x.png", dir})

	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		"https://example.com/x.png",
		filepath.Join(dir, "1.png"),
		filepath.Join(dir, "2.png"),
	}, got)
}

func TestResolveArgs_MissingFile(t *testing.T) {
	_, err := ResolveArgs([]string{filepath.Join(t.TempDir(), "missing.png")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.jpg", true},
		{"a.JPEG", true},
		{"a.tiff", true},
		{"a.txt", false},
		{"png", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsImageFile(tt.path), tt.path)
	}
}
