package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Theme selects the category palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme accepts "dark" or "light" (any case).
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// FallbackColor is used for a category missing from the colour map.
const FallbackColor = "#dddddd"

var (
	darkPalette = []string{
		"#fd8a09", "#4ade80", "#60a5fa", "#f472b6", "#facc15", "#a78bfa", "#34d399", "#f87171",
	}
	lightPalette = []string{
		"#dc6803", "#15803d", "#2563eb", "#db2777", "#ca8a04", "#7c3aed", "#0f766e", "#dc2626",
	}
)

// Palette returns a copy of the ordered category palette for t.
func Palette(t Theme) []string {
	src := darkPalette
	if t == ThemeLight {
		src = lightPalette
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// ColorMap maps a category to its display colour.
type ColorMap map[string]string

// Color returns the colour for category, or FallbackColor.
func (m ColorMap) Color(category string) string {
	if c, ok := m[category]; ok {
		return c
	}
	return FallbackColor
}

// AssignCategoryColors sorts the distinct categories of records and maps them
// index-wise onto the palette of theme, wrapping when the categories outnumber
// the palette.
func AssignCategoryColors(records []Record, theme Theme) ColorMap {
	palette := darkPalette
	if theme == ThemeLight {
		palette = lightPalette
	}
	cats := distinctCategories(records)
	m := make(ColorMap, len(cats))
	for i, cat := range cats {
		m[cat] = palette[i%len(palette)]
	}
	return m
}

func distinctCategories(records []Record) []string {
	seen := make(map[string]struct{}, 16)
	var cats []string
	for _, r := range records {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		cats = append(cats, r.Category)
	}
	sort.Strings(cats)
	return cats
}
