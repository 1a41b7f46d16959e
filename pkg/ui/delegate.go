package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// categoryColumnWidth is the fixed width of the category badge column.
const categoryColumnWidth = 14

// TutorialDelegate renders tutorial rows in the list
type TutorialDelegate struct {
	Theme Theme
}

func (d TutorialDelegate) Height() int {
	return 1
}

func (d TutorialDelegate) Spacing() int {
	return 0
}

func (d TutorialDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render lays a row out as [sel] [category] [topic...] [keywords].
func (d TutorialDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(TutorialItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	isSelected := index == m.Index()

	catWidth := categoryColumnWidth
	if width < 50 {
		catWidth = 8
	}
	leftFixedWidth := 2 + catWidth + 1

	// Keywords only when there is room for them.
	var right string
	rightWidth := 0
	if width > 70 && i.Row.Keywords != "" {
		kwWidth := width / 4
		right = t.MutedText.Render(truncateRunesHelper(i.Row.Keywords, kwWidth, "…"))
		rightWidth = lipgloss.Width(right) + 1
	}

	topicWidth := width - leftFixedWidth - rightWidth
	if topicWidth < 5 {
		topicWidth = 5
	}
	topic := padRight(truncateRunesHelper(i.Row.Topic, topicWidth, "…"), topicWidth)

	var left strings.Builder
	if isSelected {
		left.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		left.WriteString("  ")
	}
	left.WriteString(t.RenderCategoryBadge(i.Row.Category, i.Row.Color, catWidth))
	left.WriteString(" ")

	topicStyle := t.Renderer.NewStyle()
	if isSelected {
		topicStyle = topicStyle.Foreground(t.Primary).Bold(true)
	} else {
		topicStyle = topicStyle.Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E8E8E8"})
	}
	left.WriteString(topicStyle.Render(topic))

	padding := width - lipgloss.Width(left.String()) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	row := left.String() + strings.Repeat(" ", padding) + right

	rowStyle := t.Renderer.NewStyle().Width(width).MaxWidth(width)
	if isSelected {
		row = rowStyle.Background(t.Highlight).Render(row)
	} else {
		row = rowStyle.Render(row)
	}

	fmt.Fprint(w, row)
}
