package preview

import (
	"errors"
	"strings"
	"testing"
)

func TestRendererText(t *testing.T) {
	r := NewRenderer(60, true)

	tests := []struct {
		name string
		d    Display
		want string
	}{
		{"idle", Display{State: StateIdle}, ""},
		{"loading", Display{State: StateLoading}, MsgLoading},
		{"error", Display{State: StateError, Err: errors.New("boom")}, MsgUnavailable},
		{"not found", Display{State: StateReady, Overview: Overview{}}, MsgNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Text(tt.d); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererMarkdown(t *testing.T) {
	r := NewRenderer(60, false)

	md := r.Markdown(Overview{HTML: `<p>Hello <strong>world</strong></p><ul><li>one</li></ul>`, Found: true})
	if !strings.Contains(md, "Hello **world**") {
		t.Errorf("expected bold markdown, got %q", md)
	}
	if !strings.Contains(md, "one") {
		t.Errorf("expected list item, got %q", md)
	}

	text := r.Text(Display{State: StateReady, Overview: Overview{HTML: "<p>x</p>", Found: true}})
	if !strings.HasPrefix(text, "# "+OverviewTitle) {
		t.Errorf("expected overview title first, got %q", text)
	}
}

func TestRendererSanitizes(t *testing.T) {
	r := NewRenderer(60, true)
	md := r.Markdown(Overview{
		HTML:  `<p>safe</p><script>alert(1)</script><p onclick="evil()">click</p>`,
		Found: true,
	})
	if strings.Contains(md, "alert") || strings.Contains(md, "evil") {
		t.Errorf("unsanitised output: %q", md)
	}
	if !strings.Contains(md, "safe") || !strings.Contains(md, "click") {
		t.Errorf("lost safe content: %q", md)
	}
}

func TestRendererRenderReady(t *testing.T) {
	r := NewRenderer(60, true)
	out := r.Render(Display{State: StateReady, Overview: Overview{HTML: "<p>Kubernetes</p>", Found: true}})
	if !strings.Contains(out, "Kubernetes") {
		t.Errorf("rendered output lost content: %q", out)
	}
	if got := r.Render(Display{State: StateError}); got != MsgUnavailable {
		t.Errorf("Render(error) = %q", got)
	}
}
