package gallery

import "github.com/llehouerou/vitrine/internal/ui/layout"

// Mode selects the presentation variant.
type Mode int

const (
	ModeDesktop Mode = iota // viewer, thumbnail strip and zoom
	ModeMobile              // single paginated strip
)

func (m Mode) String() string {
	switch m {
	case ModeDesktop:
		return "desktop"
	case ModeMobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// Selector picks the presentation mode from the terminal width.
type Selector struct {
	breakpoint int
	mode       Mode
	evaluated  bool
}

// NewSelector creates a selector. Non-positive breakpoints use layout.DefaultBreakpoint.
func NewSelector(breakpoint int) *Selector {
	if breakpoint <= 0 {
		breakpoint = layout.DefaultBreakpoint
	}
	return &Selector{breakpoint: breakpoint}
}

// Breakpoint returns the width threshold.
func (s *Selector) Breakpoint() int {
	return s.breakpoint
}

// Mode returns the last evaluated mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Evaluate computes the mode for width. switched is true on the first
// evaluation and whenever the width crosses the breakpoint.
func (s *Selector) Evaluate(width int) (mode Mode, switched bool) {
	mode = ModeDesktop
	if layout.IsMobile(width, s.breakpoint) {
		mode = ModeMobile
	}
	switched = !s.evaluated || mode != s.mode
	s.mode = mode
	s.evaluated = true
	return mode, switched
}
