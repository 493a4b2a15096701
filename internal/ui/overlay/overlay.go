// Package overlay composes popups over the gallery view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose overlays top on base. Each non-blank overlay line replaces the
// base columns between its first and last visible character. ANSI styling
// on both sides is preserved.
func Compose(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(top, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := 0
		for _, r := range plain {
			if r != ' ' {
				break
			}
			startCol++
		}
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))

		content := ansi.Cut(overlayLine, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		// Cutting through a wide character can drop or keep a whole cell;
		// pad so the overlay lands on the right column.
		prefix := ansi.Cut(baseLine, 0, startCol)
		if w := ansi.StringWidth(prefix); w < startCol {
			prefix += strings.Repeat(" ", startCol-w)
		}

		result := prefix + content
		if endCol < width {
			suffix := ansi.Cut(baseLine, endCol, width)
			want := width - endCol
			switch got := ansi.StringWidth(suffix); {
			case got > want:
				suffix = " " + ansi.Cut(suffix, got-want+1, got)
			case got < want:
				suffix += strings.Repeat(" ", want-got)
			}
			result += suffix
		}

		baseLines[i] = result
	}

	return strings.Join(baseLines, "\n")
}
