package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/metrics"
	"github.com/vanderheijden86/devquest/pkg/ui"
)

var (
	listJSON     bool
	listCategory string
	listSearch   string
	listStats    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the tutorials matching the given filters",
	Example: `  dq list --category Go
  dq list --search concurrency --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output the filtered view as JSON")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only tutorials of this category (case-insensitive)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only tutorials whose topic or keywords contain this text")
	listCmd.Flags().BoolVar(&listStats, "stats", false, "Print load and render timings to stderr")
}

func runList(cmd *cobra.Command, args []string) error {
	if listStats {
		metrics.SetEnabled(true)
	}

	env, err := loadEnv()
	if err != nil {
		return err
	}

	v := filteredView(env.records, env.theme, listCategory, listSearch)

	out := cmd.OutOrStdout()
	if listJSON {
		err = writeJSONList(out, v)
	} else {
		width, styled := 100, false
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			styled = true
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				width = w
			}
		}
		err = writePlainList(out, v, width, styled)
	}
	if err != nil {
		return err
	}

	if listStats {
		writeStats(cmd.ErrOrStderr())
	}
	return nil
}

// filteredView loads records into a fresh store and applies the filters.
func filteredView(records []catalog.Record, theme catalog.Theme, category, query string) catalog.View {
	store := catalog.NewStore(theme)
	store.Load(records)
	store.SetCategoryFilter(category)
	return store.SetSearchQuery(query)
}

func writeJSONList(w io.Writer, v catalog.View) error {
	if v.Rows == nil {
		v.Rows = []catalog.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writePlainList prints one row per tutorial: category, topic, keywords.
// Columns are sized to width; styled adds category colours.
func writePlainList(w io.Writer, v catalog.View, width int, styled bool) error {
	if v.Empty() {
		_, err := fmt.Fprintln(w, ui.EmptyStateText)
		return err
	}

	catWidth := 0
	for _, r := range v.Rows {
		if cw := runewidth.StringWidth(r.Category); cw > catWidth {
			catWidth = cw
		}
	}
	if catWidth > 16 {
		catWidth = 16
	}
	topicWidth := (width - catWidth - 4) * 3 / 5
	if topicWidth < 10 {
		topicWidth = 10
	}
	kwWidth := width - catWidth - topicWidth - 4
	if kwWidth < 0 {
		kwWidth = 0
	}

	renderer := lipgloss.NewRenderer(w)
	for _, r := range v.Rows {
		cat := runewidth.FillRight(runewidth.Truncate(r.Category, catWidth, "…"), catWidth)
		if styled {
			cat = renderer.NewStyle().Foreground(ui.ThemeFg(r.Color)).Bold(true).Render(cat)
		}
		topic := runewidth.FillRight(runewidth.Truncate(r.Topic, topicWidth, "…"), topicWidth)
		line := cat + "  " + topic
		if kwWidth > 3 && r.Keywords != "" {
			line += "  " + runewidth.Truncate(r.Keywords, kwWidth, "…")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func writeStats(w io.Writer) {
	fmt.Fprintln(w, "timings:")
	for _, s := range metrics.AllTimingStats() {
		fmt.Fprintf(w, "  %-16s n=%-4d avg=%.2fms max=%.2fms\n", s.Name, s.Count, s.AvgMs, s.MaxMs)
	}
	counters := metrics.CounterValues()
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "counters:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-22s %d\n", name, counters[name])
	}
}
