package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/llehouerou/vitrine/internal/media"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanDir returns the image files directly inside dir, sorted by name.
// Hidden files are skipped.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !IsImageFile(name) {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return out, nil
}

// ResolveArgs turns command-line arguments into an ordered image list. URLs
// are kept as given, directories are expanded with ScanDir and files must
// exist. Order follows the arguments.
func ResolveArgs(args []string) ([]string, error) {
	var refs []string
	for _, arg := range args {
		if media.IsRemote(arg) {
			refs = append(refs, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", arg, err)
		}
		if !info.IsDir() {
			refs = append(refs, filepath.Clean(arg))
			continue
		}

		files, err := ScanDir(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, files...)
	}
	return refs, nil
}
