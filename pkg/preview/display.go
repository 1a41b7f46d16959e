package preview

import "sync"

// State is the display state of the preview surface.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady // overview fetched; Overview.Found may still be false
	StateError
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// Target identifies the UI element that asked for a preview.
type Target string

// Display is one write to the preview surface.
type Display struct {
	State    State
	Target   Target
	Ref      string
	Overview Overview
	Err      error
	// Cached is set when the overview was served from the cache.
	Cached bool
}

// Sink receives display updates. Show is called with the service lock held,
// so implementations must not block or call back into the Service.
type Sink interface {
	Show(Display)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Display)

// Show calls f(d).
func (f SinkFunc) Show(d Display) { f(d) }

// LatestSink keeps only the most recent display and signals on C when it
// changes. Intermediate displays may be skipped by a slow reader; the latest
// one is never lost.
type LatestSink struct {
	mu     sync.Mutex
	latest Display
	ch     chan struct{}
}

// NewLatestSink creates an empty sink.
func NewLatestSink() *LatestSink {
	return &LatestSink{ch: make(chan struct{}, 1)}
}

// Show records d and signals without blocking.
func (s *LatestSink) Show(d Display) {
	s.mu.Lock()
	s.latest = d
	s.mu.Unlock()
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C is signalled after every Show.
func (s *LatestSink) C() <-chan struct{} {
	return s.ch
}

// Latest returns the most recent display.
func (s *LatestSink) Latest() Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
