// Package helpbindings provides a scrollable popup listing key bindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/vitrine/internal/keymap"
	"github.com/llehouerou/vitrine/internal/ui"
	"github.com/llehouerou/vitrine/internal/ui/popup"
	"github.com/llehouerou/vitrine/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextViewer,
	keymap.ContextStrip,
	keymap.ContextMobile,
}

var categoryLabels = map[string]string{
	keymap.ContextGlobal: "Global",
	keymap.ContextViewer: "Viewer",
	keymap.ContextStrip:  "Thumbnails",
	keymap.ContextMobile: "Mobile",
}

// Mouse help is not a key binding, so it is listed separately.
var mouseHelp = [][2]string{
	{"hover", "Zoom image under the pointer"},
	{"click", "Show thumbnail / swipe by half"},
	{"wheel", "Scroll thumbnails"},
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a new help bindings model.
func New() Model {
	return Model{}
}

// SetContexts sets which binding contexts to display, in a fixed order.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := strings.Split(m.buildContent(), "\n")

	// Width from all lines so scrolling never resizes the box.
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := lines[start:end]

	for i, line := range visible {
		if w := lipgloss.Width(line); w < maxWidth {
			visible[i] = line + strings.Repeat(" ", maxWidth-w)
		}
	}

	t := styles.T()
	var result strings.Builder
	result.WriteString(t.S().Title.Render("Help"))
	result.WriteString("\n\n")
	result.WriteString(strings.Join(visible, "\n"))
	result.WriteString("\n\n")
	result.WriteString(t.S().Subtle.Render(m.buildFooter()))

	return result.String()
}

func (m Model) buildContent() string {
	t := styles.T()
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	descStyle := t.S().Base
	headerStyle := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	separatorStyle := t.S().Subtle

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, len(keyLabel(b.Keys)))
	}
	for _, h := range mouseHelp {
		keyWidth = max(keyWidth, len(h[0]))
	}

	var sb strings.Builder
	writeHeader := func(label string) {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(headerStyle.Render(label))
		sb.WriteString("\n")
		sb.WriteString(separatorStyle.Render(strings.Repeat("─", keyWidth+15)))
		sb.WriteString("\n")
	}
	writeRow := func(key, desc string) {
		sb.WriteString(keyStyle.Render(key + strings.Repeat(" ", keyWidth-len(key))))
		sb.WriteString("  ")
		sb.WriteString(descStyle.Render(desc))
		sb.WriteString("\n")
	}

	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			writeHeader(label)
			current = b.Context
		}
		writeRow(keyLabel(b.Keys), b.Description)
	}

	writeHeader("Mouse")
	for _, h := range mouseHelp {
		writeRow(h[0], h[1])
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func keyLabel(keys []string) string {
	labels := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		labels[i] = k
	}
	return strings.Join(labels, ", ")
}

func (m Model) buildFooter() string {
	if m.totalLines() <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

// visibleHeight leaves room for popup chrome (title, footer, borders, margins).
func (m Model) visibleHeight() int {
	return max(m.Height()-10, 5)
}

func (m Model) totalLines() int {
	return strings.Count(m.buildContent(), "\n") + 1
}

func (m Model) maxScroll() int {
	return max(m.totalLines()-m.visibleHeight(), 0)
}
