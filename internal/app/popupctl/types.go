package popupctl

// Type identifies which popup is currently active.
type Type int

const (
	None Type = iota
	Help
	Error
)

// Priority defines which popup takes precedence (highest priority first).
var Priority = []Type{
	Error,
	Help,
}

// RenderOrder defines the order popups are rendered (bottom to top).
var RenderOrder = []Type{
	Help,
	Error,
}
