// Package preview fetches tutorial documents, extracts their overview section
// and shows it on a single preview surface.
//
// At most one preview target is current at a time. Fetches are never cancelled;
// a result whose target is no longer current when it arrives is dropped, so a
// slow response can never overwrite the display of a newer request.
package preview

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vanderheijden86/devquest/pkg/debug"
	"github.com/vanderheijden86/devquest/pkg/metrics"
)

// Options configures a Service.
type Options struct {
	// RewriteAssetPaths runs RewriteRelativeAssetPaths before extraction.
	RewriteAssetPaths bool
	// Cache is shared between services when set.
	Cache *Cache
}

// Service is the preview pipeline: fetch, extract, cache, display.
type Service struct {
	fetcher Fetcher
	sink    Sink
	cache   *Cache
	opts    Options
	group   singleflight.Group

	mu      sync.Mutex
	current Target
	active  bool

	inflight sync.WaitGroup
}

// NewService creates a service that fetches through f and displays into sink.
func NewService(f Fetcher, sink Sink, opts Options) *Service {
	c := opts.Cache
	if c == nil {
		c = NewCache()
	}
	if sink == nil {
		sink = SinkFunc(func(Display) {})
	}
	return &Service{fetcher: f, sink: sink, cache: c, opts: opts}
}

// Cache returns the overview cache.
func (s *Service) Cache() *Cache {
	return s.cache
}

// Fetcher returns the document fetcher.
func (s *Service) Fetcher() Fetcher {
	return s.fetcher
}

// Current returns the active target, if any.
func (s *Service) Current() (Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.active
}

// RequestPreview makes target current and shows the overview of ref. A cached
// overview is displayed before RequestPreview returns; otherwise the document
// is fetched in the background and displayed only if target is still current
// when it completes.
func (s *Service) RequestPreview(ctx context.Context, target Target, ref string) {
	s.mu.Lock()
	s.current = target
	s.active = true
	s.sink.Show(Display{State: StateLoading, Target: target, Ref: ref})

	if ov, ok := s.cache.Get(ref); ok {
		metrics.PreviewCacheHits.Inc()
		s.sink.Show(Display{State: StateReady, Target: target, Ref: ref, Overview: ov, Cached: true})
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	metrics.PreviewCacheMisses.Inc()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ov, err := s.load(ctx, ref)
		s.deliver(target, ref, ov, err)
	}()
}

// load fetches and extracts ref, sharing one fetch between concurrent callers
// for the same reference.
func (s *Service) load(ctx context.Context, ref string) (Overview, error) {
	v, err, shared := s.group.Do(ref, func() (any, error) {
		if ov, ok := s.cache.Get(ref); ok {
			return ov, nil
		}
		return s.fetchAndExtract(ctx, ref)
	})
	debug.L().Debug("preview: load done", zap.String("ref", ref), zap.Bool("shared", shared), zap.Error(err))
	if err != nil {
		return Overview{}, err
	}
	return v.(Overview), nil
}

func (s *Service) fetchAndExtract(ctx context.Context, ref string) (Overview, error) {
	content, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return Overview{}, err
	}
	if s.opts.RewriteAssetPaths {
		rewritten, err := RewriteRelativeAssetPaths(content)
		if err != nil {
			return Overview{}, fmt.Errorf("%w: %s: %v", ErrFetchFailed, ref, err)
		}
		content = []byte(rewritten)
	}
	ov, err := ExtractOverview(content)
	if err != nil {
		return Overview{}, fmt.Errorf("%w: %s: %v", ErrFetchFailed, ref, err)
	}
	debug.LogIf(!ov.Found, "preview: %s has no overview heading", ref)
	s.cache.Put(ref, ov)
	return ov, nil
}

// deliver shows a completed load if its target is still current.
func (s *Service) deliver(target Target, ref string, ov Overview, err error) {
	if err != nil {
		metrics.PreviewFetchErrors.Inc()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.current != target {
		metrics.PreviewStaleDrops.Inc()
		debug.L().Debug("preview: dropping stale result", zap.String("target", string(target)), zap.String("ref", ref))
		return
	}
	if err != nil {
		s.sink.Show(Display{State: StateError, Target: target, Ref: ref, Err: err})
		return
	}
	s.sink.Show(Display{State: StateReady, Target: target, Ref: ref, Overview: ov})
}

// Hide clears the preview surface and forgets the current target.
func (s *Service) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
	s.current = ""
	s.sink.Show(Display{State: StateIdle})
}

// Wait blocks until every background fetch has completed.
func (s *Service) Wait() {
	s.inflight.Wait()
}
