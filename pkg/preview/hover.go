package preview

import (
	"context"
	"sync"
	"time"

	"github.com/vanderheijden86/devquest/pkg/debounce"
)

// Default hover delays.
const (
	DefaultShowDelay = 500 * time.Millisecond
	DefaultHideDelay = 200 * time.Millisecond
)

// HoverConfig configures the delays of a Hover.
type HoverConfig struct {
	ShowDelay time.Duration
	HideDelay time.Duration
}

func (c *HoverConfig) defaults() {
	if c.ShowDelay <= 0 {
		c.ShowDelay = DefaultShowDelay
	}
	if c.HideDelay <= 0 {
		c.HideDelay = DefaultHideDelay
	}
}

// Hover drives the Idle → Loading → Ready/Error → Idle cycle from pointer-like
// events. All targets share one pending transition: every event cancels the
// transition scheduled by the previous one.
type Hover struct {
	ctx     context.Context
	svc     *Service
	cfg     HoverConfig
	pending *debounce.Debouncer

	mu      sync.Mutex
	hovered Target
}

// NewHover creates a hover controller for svc. ctx is passed to every fetch.
func NewHover(ctx context.Context, svc *Service, cfg HoverConfig) *Hover {
	cfg.defaults()
	return &Hover{
		ctx:     ctx,
		svc:     svc,
		cfg:     cfg,
		pending: debounce.New(cfg.ShowDelay),
	}
}

// Enter schedules a preview of ref for target after the show delay.
func (h *Hover) Enter(target Target, ref string) {
	h.mu.Lock()
	h.hovered = target
	h.mu.Unlock()
	h.pending.TriggerAfter(h.cfg.ShowDelay, func() {
		h.svc.RequestPreview(h.ctx, target, ref)
	})
}

// Leave schedules hiding the preview after the hide delay.
func (h *Hover) Leave(target Target) {
	h.mu.Lock()
	if h.hovered == target {
		h.hovered = ""
	}
	h.mu.Unlock()
	h.pending.TriggerAfter(h.cfg.HideDelay, h.svc.Hide)
}

// EnterSurface keeps the preview open while the user is on it.
func (h *Hover) EnterSurface() {
	h.pending.Cancel()
}

// LeaveSurface hides the preview immediately.
func (h *Hover) LeaveSurface() {
	h.pending.Cancel()
	h.svc.Hide()
}

// Dismiss cancels any pending transition and hides the preview, e.g. on scroll
// or on a click outside both the rows and the surface.
func (h *Hover) Dismiss() {
	h.mu.Lock()
	h.hovered = ""
	h.mu.Unlock()
	h.LeaveSurface()
}

// Pending reports whether a show or hide is scheduled.
func (h *Hover) Pending() bool {
	return h.pending.Pending()
}

// Hovered returns the target the pointer is on, if any.
func (h *Hover) Hovered() Target {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hovered
}

// Stop cancels any pending transition without touching the display.
func (h *Hover) Stop() {
	h.pending.Cancel()
}
