// Package config loads vitrine settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults applied by the getters.
const (
	DefaultBreakpoint    = 100
	DefaultMagnification = 2.0
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultThumbWidth    = 12
	DefaultThumbHeight   = 4
	DefaultProtocol      = "auto"

	maxMagnification = 8.0
)

type Config struct {
	Breakpoint    int             `koanf:"breakpoint"`     // terminal width in cells below which the mobile layout is used
	Zoom          ZoomConfig      `koanf:"zoom"`
	Thumbnails    ThumbnailConfig `koanf:"thumbnails"`
	ImageProtocol string          `koanf:"image_protocol"` // "auto", "kitty", "sixel", "blocks", or "none"
	Catalog       string          `koanf:"catalog"`        // path to the product catalog database
	CacheDir      string          `koanf:"cache_dir"`      // base dir for the frame cache
	LogFile       string          `koanf:"log_file"`
}

// ZoomConfig holds hover magnification settings.
type ZoomConfig struct {
	Magnification   float64 `koanf:"magnification"`     // scale while zoomed (default: 2.0)
	FrameIntervalMS int     `koanf:"frame_interval_ms"` // pointer coalescing interval (default: 16)
}

// ThumbnailConfig holds the thumbnail cell size.
type ThumbnailConfig struct {
	Width  int `koanf:"width"`
	Height int `koanf:"height"`
}

// Load reads the config files in priority order (last wins). extra is an
// optional explicit path which must exist.
func Load(extra string) (*Config, error) {
	if extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	return loadFiles(getConfigPaths(extra))
}

func loadFiles(paths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Catalog = expandPath(cfg.Catalog)
	cfg.CacheDir = expandPath(cfg.CacheDir)
	cfg.LogFile = expandPath(cfg.LogFile)

	return cfg, nil
}

func getConfigPaths(extra string) []string {
	paths := []string{
		// 1. $XDG_CONFIG_HOME/vitrine/config.toml
		filepath.Join(xdg.ConfigHome, "vitrine", "config.toml"),
		// 2. ./vitrine.toml
		"vitrine.toml",
	}

	// 3. --config (highest priority)
	if extra != "" {
		paths = append(paths, extra)
	}

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetBreakpoint returns the layout breakpoint with the default applied.
func (c *Config) GetBreakpoint() int {
	if c.Breakpoint <= 0 {
		return DefaultBreakpoint
	}
	return c.Breakpoint
}

// GetZoomConfig returns the zoom configuration with defaults applied.
func (c *Config) GetZoomConfig() ZoomConfig {
	cfg := c.Zoom

	if cfg.Magnification <= 1 || cfg.Magnification > maxMagnification {
		cfg.Magnification = DefaultMagnification
	}
	if cfg.FrameIntervalMS <= 0 || cfg.FrameIntervalMS > 1000 {
		cfg.FrameIntervalMS = int(DefaultFrameInterval / time.Millisecond)
	}

	return cfg
}

// FrameInterval returns the pointer coalescing interval.
func (z ZoomConfig) FrameInterval() time.Duration {
	return time.Duration(z.FrameIntervalMS) * time.Millisecond
}

// GetThumbnailConfig returns the thumbnail size with defaults applied.
func (c *Config) GetThumbnailConfig() ThumbnailConfig {
	cfg := c.Thumbnails

	if cfg.Width < 4 || cfg.Width > 40 {
		cfg.Width = DefaultThumbWidth
	}
	if cfg.Height < 2 || cfg.Height > 20 {
		cfg.Height = DefaultThumbHeight
	}

	return cfg
}

// GetImageProtocol returns the configured protocol name, lowercased.
func (c *Config) GetImageProtocol() string {
	p := strings.ToLower(strings.TrimSpace(c.ImageProtocol))
	if p == "" {
		return DefaultProtocol
	}
	return p
}

// GetCatalogPath returns the catalog database path, defaulting to the XDG
// data dir.
func (c *Config) GetCatalogPath() string {
	if c.Catalog != "" {
		return c.Catalog
	}
	return filepath.Join(xdg.DataHome, "vitrine", "catalog.db")
}

// GetLogFile returns the log file path, defaulting to the XDG state dir.
func (c *Config) GetLogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(xdg.StateHome, "vitrine", "vitrine.log")
}
