package imgproto

import (
	"os"
	"strings"
)

// EnvOverride names the environment variable that forces a protocol.
const EnvOverride = "VITRINE_IMAGE_PROTOCOL"

// Protocol names accepted by Detect.
const (
	NameAuto   = "auto"
	NameKitty  = "kitty"
	NameSixel  = "sixel"
	NameBlocks = "blocks"
	NameNone   = "none"
)

// Detect returns the protocol to draw with. The environment override wins
// over name; "auto" or an unknown name inspects the terminal and falls back to
// half-blocks. "none" returns nil.
func Detect(name string) Protocol {
	if env := os.Getenv(EnvOverride); env != "" {
		name = env
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameKitty:
		return NewKitty()
	case NameSixel:
		return NewSixel()
	case NameBlocks:
		return NewBlocks()
	case NameNone:
		return nil
	}

	if IsKittySupported() {
		return NewKitty()
	}
	if IsSixelSupported() {
		return NewSixel()
	}
	return NewBlocks()
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Parent terminal variables can leak into Contour, which has no Kitty support.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	// KONSOLE_VERSION looks like "220401"; 22.04 added Kitty graphics.
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")

	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}
	return term == "foot" || term == "foot-extra" || term == "mlterm"
}
