// Package keymap defines key bindings and action dispatch for the gallery.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionHelp        Action = "help"
	ActionClose       Action = "close"        // esc - close popup
	ActionSwitchFocus Action = "switch_focus" // tab - viewer <-> thumbnails
	ActionReload      Action = "reload"       // retry failed image loads

	// Slide navigation. The focused widget decides what moves: the viewer and
	// mobile strip change the active slide, the thumbnail strip moves its
	// keyboard cursor.
	ActionPrev  Action = "prev"
	ActionNext  Action = "next"
	ActionFirst Action = "first"
	ActionLast  Action = "last"

	// Thumbnail strip
	ActionSelect Action = "select" // enter - make the focused thumbnail active
)
