// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	// APC (Kitty graphics) and DCS (Sixel) strings.
	graphicsPattern = regexp.MustCompile(`\x1b[_P][^\x1b]*\x1b\\`)
	// Cursor save/restore/position sequences wrapping image placements.
	cursorPattern = regexp.MustCompile(`\x1b\[(?:[su]|[0-9]+;[0-9]+H)`)
)

// StripANSI removes SGR styling from a string.
func StripANSI(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

// StripGraphics removes image protocol payloads and the cursor movement
// around them, leaving only the text layout.
func StripGraphics(s string) string {
	s = graphicsPattern.ReplaceAllString(s, "")
	return cursorPattern.ReplaceAllString(s, "")
}

// Plain strips both styling and graphics.
func Plain(s string) string {
	return StripANSI(StripGraphics(s))
}

// MeasureWidth returns the visual width of a string, ignoring ANSI codes.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}

// ContainsLine checks if any line in the output contains the given substring.
func ContainsLine(output, substr string) bool {
	return FindLine(output, substr) != ""
}

// FindLine returns the first line containing the given substring, or empty string.
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(output, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// SplitLines splits output into lines, removing trailing empty lines.
func SplitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// AssertContains returns an error message if output doesn't contain substr,
// or empty string if it does.
func AssertContains(output, substr string) string {
	if !strings.Contains(Plain(output), substr) {
		return "expected output to contain " + substr
	}
	return ""
}

// AssertNotContains returns an error message if output contains substr,
// or empty string if it doesn't.
func AssertNotContains(output, substr string) string {
	if strings.Contains(Plain(output), substr) {
		return "expected output to NOT contain " + substr
	}
	return ""
}
