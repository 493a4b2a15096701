package imgproto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	cacheDirName  = "vitrine/frames"
	cacheMaxAge   = 30 * 24 * time.Hour
	pruneInterval = 24 * time.Hour
)

// Cache stores resized frames as PNG files so reopening a gallery skips the
// scaling work.
type Cache struct {
	dir        string
	lastPruned time.Time
}

// NewCache creates a frame cache under baseDir, or under the XDG cache home
// when baseDir is empty.
func NewCache(baseDir string) (*Cache, error) {
	if baseDir == "" {
		baseDir = xdg.CacheHome
	}

	dir := filepath.Join(baseDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating frame cache: %w", err)
	}

	c := &Cache{dir: dir}
	go c.prune()

	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func cacheKey(key string, pixelW, pixelH int) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s:%d:%d", key, pixelW, pixelH))
	return hex.EncodeToString(hash[:])
}

func (c *Cache) path(key string, pixelW, pixelH int) string {
	return filepath.Join(c.dir, cacheKey(key, pixelW, pixelH)+".png")
}

// Get returns cached PNG data, or nil on a miss.
func (c *Cache) Get(key string, pixelW, pixelH int) []byte {
	if c == nil {
		return nil
	}

	path := c.path(key, pixelW, pixelH)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// Touch so frequently shown frames survive pruning.
	now := time.Now()
	_ = os.Chtimes(path, now, now) //nolint:errcheck // best-effort

	return data
}

// Put stores PNG data.
func (c *Cache) Put(key string, pixelW, pixelH int, data []byte) error {
	if c == nil {
		return nil
	}
	return os.WriteFile(c.path(key, pixelW, pixelH), data, 0o600)
}

func (c *Cache) prune() {
	if time.Since(c.lastPruned) < pruneInterval {
		return
	}
	c.lastPruned = time.Now()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-cacheMaxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(c.dir, entry.Name())) //nolint:errcheck // best-effort cleanup
		}
	}
}
