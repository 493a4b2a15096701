// Package keymap defines key bindings for the gallery.
package keymap

// Contexts group bindings for the help popup.
const (
	ContextGlobal = "global"
	ContextViewer = "viewer"
	ContextStrip  = "thumbnails"
	ContextMobile = "mobile"
)

// Binding maps keys to an action in a help context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionClose, []string{"esc"}, "Close popup", ContextGlobal},
	{ActionSwitchFocus, []string{"tab"}, "Focus viewer/thumbnails", ContextGlobal},
	{ActionReload, []string{"r"}, "Retry failed images", ContextGlobal},

	// Main viewer
	{ActionPrev, []string{"left", "h"}, "Previous image", ContextViewer},
	{ActionNext, []string{"right", "l"}, "Next image", ContextViewer},
	{ActionFirst, []string{"home", "g"}, "First image", ContextViewer},
	{ActionLast, []string{"end", "G"}, "Last image", ContextViewer},

	// Thumbnail strip
	{ActionPrev, []string{"left", "h"}, "Focus previous thumbnail", ContextStrip},
	{ActionNext, []string{"right", "l"}, "Focus next thumbnail", ContextStrip},
	{ActionFirst, []string{"home", "g"}, "Focus first thumbnail", ContextStrip},
	{ActionLast, []string{"end", "G"}, "Focus last thumbnail", ContextStrip},
	{ActionSelect, []string{"enter", " "}, "Show focused thumbnail", ContextStrip},

	// Mobile strip
	{ActionPrev, []string{"left", "h"}, "Swipe to previous", ContextMobile},
	{ActionNext, []string{"right", "l"}, "Swipe to next", ContextMobile},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
