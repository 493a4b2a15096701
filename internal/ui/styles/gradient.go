package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ansiFallback stands in for non-hex (ANSI) colors when blending.
var ansiFallback = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ApplyGradient renders text with a horizontal color gradient.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, lipgloss.NewStyle(), from, to)
}

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, lipgloss.NewStyle().Bold(true), from, to)
}

// applyGradient colors each grapheme cluster so wide and combined
// characters keep a single color.
func applyGradient(text string, base lipgloss.Style, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return base.Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range blendColors(len(clusters), from, to) {
		b.WriteString(base.Foreground(c).Render(clusters[i]))
	}
	return b.String()
}

// blendColors returns size colors evenly spaced from from to to.
func blendColors(size int, from, to lipgloss.Color) []lipgloss.Color {
	if size < 2 {
		return []lipgloss.Color{from}
	}
	colors := make([]lipgloss.Color, size)
	for i := range colors {
		colors[i] = Blend(from, to, float64(i)/float64(size-1))
	}
	return colors
}

// Blend returns the color at position t in [0, 1] between from and to,
// interpolated in HCL space.
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	t = min(max(t, 0), 1)
	return lipgloss.Color(toColorful(from).BlendHcl(toColorful(to), t).Clamped().Hex())
}

func toColorful(c lipgloss.Color) colorful.Color {
	hex := string(c)
	if len(hex) != 7 || hex[0] != '#' {
		return ansiFallback
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return ansiFallback
	}
	return col
}
