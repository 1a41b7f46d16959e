package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
)

// Adaptive colours. Light mode values are tuned for contrast on white.
var (
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
)

// panelStyle returns the bordered style for a pane.
func (t Theme) panelStyle(focused bool) lipgloss.Style {
	s := t.Renderer.NewStyle().Border(lipgloss.RoundedBorder())
	if focused {
		return s.BorderForeground(ColorPrimary)
	}
	return s.BorderForeground(ColorBgHighlight)
}

// RenderCategoryBadge renders a category name in its catalog colour.
func (t Theme) RenderCategoryBadge(category, hex string, width int) string {
	label := truncateRunesHelper(category, width, "…")
	return t.CategoryStyle(hex).Render(padRight(label, width))
}

// RenderFilterChips renders the active category and query filters.
func (t Theme) RenderFilterChips(category, query string) string {
	var chips []string
	chip := t.Renderer.NewStyle().
		Foreground(ColorInfo).
		Background(ColorBgHighlight).
		Padding(0, 1)
	if category != "" {
		chips = append(chips, chip.Render("category: "+category))
	}
	if query != "" {
		chips = append(chips, chip.Render("search: "+query))
	}
	return strings.Join(chips, " ")
}

// RenderEmptyState renders the "no results" placeholder centred in a box.
func (t Theme) RenderEmptyState(width, height int, hint string) string {
	title := t.Renderer.NewStyle().Foreground(ColorSubtext).Bold(true).Render(EmptyStateText)
	body := title
	if hint != "" {
		body += "\n\n" + t.MutedText.Italic(true).Render(hint)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
