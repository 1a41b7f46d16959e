package preview

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"

	"github.com/vanderheijden86/devquest/pkg/metrics"
)

// Messages shown on the preview surface.
const (
	MsgLoading     = "Loading overview..."
	MsgUnavailable = "Overview preview not available"
	MsgNotFound    = "Overview not found"
	OverviewTitle  = "OVERVIEW"
)

// Renderer turns displays into terminal text: overview HTML is sanitised,
// converted to markdown and rendered with glamour.
type Renderer struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
	term   *glamour.TermRenderer
}

// NewRenderer creates a renderer wrapping at width with the dark or light
// glamour style.
func NewRenderer(width int, dark bool) *Renderer {
	if width <= 0 {
		width = 80
	}
	style := "light"
	if dark {
		style = "dark"
	}
	// A nil term renderer falls back to plain markdown output.
	term, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	return &Renderer{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		term: term,
	}
}

// Markdown converts the overview markup to markdown. The markup is sanitised
// first because it comes from arbitrary documents.
func (r *Renderer) Markdown(ov Overview) string {
	if !ov.Found || ov.HTML == "" {
		return ""
	}
	clean := r.policy.Sanitize(ov.HTML)
	md, err := r.conv.ConvertString(clean)
	if err != nil || strings.TrimSpace(md) == "" {
		return strings.TrimSpace(stripTagsPolicy.Sanitize(ov.HTML))
	}
	return strings.TrimSpace(md)
}

var stripTagsPolicy = bluemonday.StrictPolicy()

// Text returns the plain-text body for d without terminal styling.
func (r *Renderer) Text(d Display) string {
	switch d.State {
	case StateLoading:
		return MsgLoading
	case StateError:
		return MsgUnavailable
	case StateReady:
		md := r.Markdown(d.Overview)
		if md == "" {
			return MsgNotFound
		}
		return "# " + OverviewTitle + "\n\n" + md
	default:
		return ""
	}
}

// Render returns the styled text for d.
func (r *Renderer) Render(d Display) string {
	defer metrics.Timer(metrics.PreviewRender)()

	text := r.Text(d)
	if d.State != StateReady || text == MsgNotFound || r.term == nil {
		return text
	}
	out, err := r.term.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n ")
}
