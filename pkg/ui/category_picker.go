package ui

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/devquest/pkg/catalog"
)

// AllCategories is the picker entry that clears the category filter.
const AllCategories = "All Categories"

// CategoryPickerModel is a fuzzy search popup for choosing the category
// filter. "All Categories" is always listed first.
type CategoryPickerModel struct {
	allCategories []string
	filtered      []string
	colors        catalog.ColorMap
	input         textinput.Model
	selectedIndex int
	width         int
	height        int
	theme         Theme
}

// NewCategoryPickerModel creates a picker over categories.
func NewCategoryPickerModel(categories []string, colors catalog.ColorMap, theme Theme) CategoryPickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 50
	ti.Width = 30
	ti.Focus()

	m := CategoryPickerModel{
		input:  ti,
		colors: colors,
		theme:  theme,
	}
	m.SetCategories(categories, colors)
	return m
}

// SetSize updates the picker dimensions
func (m *CategoryPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetCategories replaces the available categories and their colours.
func (m *CategoryPickerModel) SetCategories(categories []string, colors catalog.ColorMap) {
	sorted := make([]string, len(categories))
	copy(sorted, categories)
	sort.Strings(sorted)
	m.allCategories = sorted
	m.colors = colors
	m.filterCategories()
}

// Select moves the selection onto category, or onto "All Categories" when
// category is empty or unknown.
func (m *CategoryPickerModel) Select(category string) {
	m.selectedIndex = 0
	for i, c := range m.filtered {
		if strings.EqualFold(c, category) {
			m.selectedIndex = i
			return
		}
	}
}

// MoveUp moves selection up
func (m *CategoryPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *CategoryPickerModel) MoveDown() {
	if m.selectedIndex < len(m.filtered)-1 {
		m.selectedIndex++
	}
}

// Selected returns the chosen entry and whether one is selected. The empty
// string stands for "All Categories".
func (m *CategoryPickerModel) Selected() (string, bool) {
	if len(m.filtered) == 0 || m.selectedIndex >= len(m.filtered) {
		return "", false
	}
	c := m.filtered[m.selectedIndex]
	if c == AllCategories {
		return "", true
	}
	return c, true
}

// UpdateInput processes a key message for the text input
func (m *CategoryPickerModel) UpdateInput(msg interface{}) {
	m.input, _ = m.input.Update(msg)
	m.filterCategories()
}

// Reset clears the input and resets selection
func (m *CategoryPickerModel) Reset() {
	m.input.SetValue("")
	m.filterCategories()
}

// InputValue returns the current input value
func (m *CategoryPickerModel) InputValue() string {
	return m.input.Value()
}

// FilteredCount returns the number of listed entries, "All Categories" included.
func (m *CategoryPickerModel) FilteredCount() int {
	return len(m.filtered)
}

// filterCategories ranks categories by fuzzy match against the input.
func (m *CategoryPickerModel) filterCategories() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = append([]string{AllCategories}, m.allCategories...)
		if m.selectedIndex >= len(m.filtered) {
			m.selectedIndex = 0
		}
		return
	}

	type scored struct {
		category string
		score    int
	}

	var matches []scored
	for _, c := range m.allCategories {
		if score := fuzzyScore(c, query); score > 0 {
			matches = append(matches, scored{c, score})
		}
	}

	// Sort by score (higher is better), then alphabetically
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].category < matches[j].category
	})

	m.filtered = make([]string, 0, len(matches)+1)
	m.filtered = append(m.filtered, AllCategories)
	for _, match := range matches {
		m.filtered = append(m.filtered, match.category)
	}

	// Land on the best match rather than "All Categories".
	m.selectedIndex = 0
	if len(matches) > 0 {
		m.selectedIndex = 1
	}
}

// fuzzyScore returns a score for how well query matches label (0 = no match)
// Uses fzf-style scoring: consecutive matches, word boundary bonuses
func fuzzyScore(label, query string) int {
	label = strings.ToLower(label)
	query = strings.ToLower(query)

	if label == query {
		return 1000
	}
	if strings.HasPrefix(label, query) {
		return 500 + len(query)
	}
	if strings.Contains(label, query) {
		return 200 + len(query)
	}

	// Fuzzy subsequence match
	li, qi := 0, 0
	score := 0
	consecutive := 0
	lastMatchIdx := -1

	for li < len(label) && qi < len(query) {
		if label[li] == query[qi] {
			qi++
			matchScore := 10

			if lastMatchIdx == li-1 {
				consecutive++
				matchScore += consecutive * 5
			} else {
				consecutive = 0
			}

			if li == 0 || !unicode.IsLetter(rune(label[li-1])) {
				matchScore += 15
			}

			score += matchScore
			lastMatchIdx = li
		}
		li++
	}

	if qi == len(query) {
		return score
	}
	return 0
}

// View renders the picker overlay
func (m *CategoryPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 40
	if m.width < 50 {
		boxWidth = m.width - 10
	}
	if boxWidth < 25 {
		boxWidth = 25
	}

	maxVisible := 10
	if m.height < 15 {
		maxVisible = m.height - 7
	}
	if maxVisible < 3 {
		maxVisible = 3
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("Filter by Category"))
	lines = append(lines, "")

	inputStyle := t.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(boxWidth - 6)
	lines = append(lines, inputStyle.Render(m.input.View()))
	lines = append(lines, "")

	start := 0
	if m.selectedIndex >= maxVisible {
		start = m.selectedIndex - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		c := m.filtered[i]
		isSelected := i == m.selectedIndex

		prefix := "  "
		if isSelected {
			prefix = "> "
		}
		label := truncateRunesHelper(c, boxWidth-10, "...")

		var itemStyle lipgloss.Style
		switch {
		case isSelected:
			itemStyle = t.PrimaryBold
		case c == AllCategories:
			itemStyle = t.Base
		default:
			itemStyle = t.CategoryStyle(m.colors.Color(c)).UnsetBold()
		}
		swatch := "  "
		if c != AllCategories {
			swatch = t.CategoryStyle(m.colors.Color(c)).Render("●") + " "
		}
		lines = append(lines, prefix+swatch+itemStyle.Render(label))
	}

	if len(m.filtered) == 1 && m.InputValue() != "" {
		dimStyle := t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true)
		lines = append(lines, dimStyle.Render("  No matching categories"))
	}

	if len(m.filtered) > maxVisible {
		countStyle := t.Renderer.NewStyle().
			Foreground(t.Secondary).
			Italic(true)
		lines = append(lines, "")
		lines = append(lines, countStyle.Render(
			"  ("+itoa(m.selectedIndex+1)+"/"+itoa(len(m.filtered))+")",
		))
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("↑/↓: navigate | enter: apply | esc: cancel"))

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(strings.Join(lines, "\n")),
	)
}
