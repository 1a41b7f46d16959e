package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/devquest/pkg/preview"
)

// PreviewMsg carries the latest display written to the preview sink.
type PreviewMsg struct {
	Display preview.Display
}

// WaitForPreviewCmd waits until the sink has a new display.
func WaitForPreviewCmd(sink *preview.LatestSink) tea.Cmd {
	return func() tea.Msg {
		<-sink.C()
		return PreviewMsg{Display: sink.Latest()}
	}
}

// PreviewPane is the preview surface: a scrollable viewport showing the
// rendered overview of the current display.
type PreviewPane struct {
	viewport viewport.Model
	renderer *preview.Renderer
	display  preview.Display
	width    int
	height   int
	dark     bool
}

// NewPreviewPane creates an idle pane.
func NewPreviewPane(dark bool) PreviewPane {
	return PreviewPane{
		viewport: viewport.New(40, 10),
		dark:     dark,
	}
}

// Visible reports whether the pane has anything to show.
func (p PreviewPane) Visible() bool {
	return p.display.State != preview.StateIdle
}

// Display returns the display currently shown.
func (p PreviewPane) Display() preview.Display {
	return p.display
}

// SetSize resizes the pane's content area. The glamour renderer is rebuilt
// only when the wrap width changes.
func (p *PreviewPane) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	resized := width != p.width
	p.width, p.height = width, height
	p.viewport.Width = width
	p.viewport.Height = height
	if resized || p.renderer == nil {
		p.renderer = preview.NewRenderer(width-2, p.dark)
		p.refresh()
	}
}

// SetDark switches the glamour style.
func (p *PreviewPane) SetDark(dark bool) {
	if dark == p.dark && p.renderer != nil {
		return
	}
	p.dark = dark
	p.renderer = preview.NewRenderer(p.width-2, dark)
	p.refresh()
}

// SetDisplay shows d. A new target scrolls back to the top.
func (p *PreviewPane) SetDisplay(d preview.Display) {
	newTarget := d.Target != p.display.Target
	p.display = d
	p.refresh()
	if newTarget {
		p.viewport.GotoTop()
	}
}

func (p *PreviewPane) refresh() {
	if p.renderer == nil {
		p.renderer = preview.NewRenderer(p.width-2, p.dark)
	}
	p.viewport.SetContent(p.renderer.Render(p.display))
}

// Update forwards scroll keys to the viewport.
func (p *PreviewPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// View renders the pane with its border.
func (p PreviewPane) View(t Theme, focused bool) string {
	return t.panelStyle(focused).
		Width(p.width).
		Height(p.height).
		Render(p.viewport.View())
}
