package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atomicstack/tmux-layout-control/internal/preview"
	"github.com/atomicstack/tmux-layout-control/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const (
	chromeRows            = 4
	defaultPreviewWidth   = 80
	defaultPreviewHeight  = 12
	filterPlaceholderText = "type to filter"
)

// View renders the toggler.
func (m *Model) View() tea.View {
	v := tea.NewView(m.content())
	v.AltScreen = true
	return v
}

func (m *Model) previewHeight() int {
	if !m.showPreview {
		return 0
	}
	if m.height <= 0 {
		return defaultPreviewHeight
	}
	return m.height / 2
}

// listHeight is the number of pane rows that fit, or 0 when unbounded.
func (m *Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-chromeRows-m.previewHeight(), 1)
}

func (m *Model) content() string {
	lines := []string{theme.Render(styles.Header, m.title), m.filterLine()}
	visible := m.level.Visible(m.listHeight())
	if len(visible) == 0 {
		lines = append(lines, theme.Render(styles.Info, "no matching panes"))
	}
	for i, item := range visible {
		selected := m.level.ViewportOffset+i == m.level.Cursor
		lines = append(lines, m.itemLine(item.Label, item.Depth, item.Open, item.Pinned, selected))
	}
	if h := m.previewHeight(); h > 0 {
		width := m.width
		if width <= 0 {
			width = defaultPreviewWidth
		}
		lines = append(lines, preview.Render(styles, "", m.tree, width, h))
	}
	switch {
	case m.errMsg != "":
		lines = append(lines, theme.Render(styles.Error, m.errMsg))
	case m.infoMsg != "":
		lines = append(lines, theme.Render(styles.Info, m.infoMsg))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, theme.Render(styles.Footer, m.help.View(m.keys)))
	return strings.Join(lines, "\n")
}

func (m *Model) filterLine() string {
	prompt := theme.Render(styles.FilterPrompt, "> ")
	if m.level.Filter == "" {
		return prompt + theme.Render(styles.FilterPlaceholder, filterPlaceholderText)
	}
	return prompt + theme.Render(styles.Filter, m.level.Filter)
}

func (m *Model) itemLine(label string, depth int, open, pinned, selected bool) string {
	marker := theme.Render(styles.ClosedMarker, "○")
	if open {
		marker = theme.Render(styles.OpenMarker, "●")
	}
	text := strings.Repeat("  ", max(depth-1, 0)) + label
	if pinned {
		text += theme.Render(styles.PinnedMarker, " ^")
	}
	if m.width > 4 {
		text = ansi.Truncate(text, m.width-4, "…")
	}
	if selected {
		return theme.Render(styles.SelectedItemIndicator, "▌") + " " + marker + " " + theme.Render(styles.SelectedItem, text)
	}
	return theme.Render(styles.ItemIndicator, " ") + " " + marker + " " + theme.Render(styles.Item, text)
}
