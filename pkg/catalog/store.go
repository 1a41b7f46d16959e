package catalog

import (
	"sync"

	"github.com/vanderheijden86/devquest/pkg/debug"
	"github.com/vanderheijden86/devquest/pkg/metrics"
)

// Store owns the loaded records, the filter state and the active theme.
// Safe for concurrent use; subscribers are invoked outside the lock.
type Store struct {
	mu      sync.RWMutex
	records []Record
	filter  FilterState
	theme   Theme
	colors  ColorMap

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(View)
}

// NewStore creates an empty store using theme for category colours.
func NewStore(theme Theme) *Store {
	if theme == "" {
		theme = ThemeDark
	}
	return &Store{
		theme:  theme,
		colors: ColorMap{},
		subs:   make(map[int]func(View)),
	}
}

// Subscribe registers fn to receive every rendered view.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(View)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Load replaces the record collection, recomputes category colours and renders.
func (s *Store) Load(records []Record) View {
	cp := make([]Record, len(records))
	copy(cp, records)

	s.mu.Lock()
	s.records = cp
	s.colors = AssignCategoryColors(cp, s.theme)
	s.mu.Unlock()

	debug.Log("catalog: loaded %d records", len(cp))
	return s.Render()
}

// SetCategoryFilter filters by category; an empty category clears the filter.
func (s *Store) SetCategoryFilter(category string) View {
	s.mu.Lock()
	s.filter.Category = category
	s.mu.Unlock()
	return s.Render()
}

// SetSearchQuery sets the search query; an empty query clears it.
func (s *Store) SetSearchQuery(query string) View {
	s.mu.Lock()
	s.filter.Query = query
	s.mu.Unlock()
	return s.Render()
}

// SetTheme switches the palette and remaps category colours.
func (s *Store) SetTheme(theme Theme) View {
	s.mu.Lock()
	s.theme = theme
	s.colors = AssignCategoryColors(s.records, theme)
	s.mu.Unlock()
	return s.Render()
}

// AssignCategoryColors recomputes the colour map from the current records and
// theme, replacing any previous assignment.
func (s *Store) AssignCategoryColors() ColorMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colors = AssignCategoryColors(s.records, s.theme)
	return s.copyColors()
}

// Colors returns a copy of the current colour map.
func (s *Store) Colors() ColorMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyColors()
}

func (s *Store) copyColors() ColorMap {
	out := make(ColorMap, len(s.colors))
	for k, v := range s.colors {
		out[k] = v
	}
	return out
}

// Theme returns the active theme.
func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Filter returns the active filter state.
func (s *Store) Filter() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Records returns a copy of the loaded records.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Categories returns the sorted distinct categories of the loaded records.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctCategories(s.records)
}

// Render computes the filtered view and delivers it to every subscriber.
// Rendering the same state twice yields the same view.
func (s *Store) Render() View {
	defer metrics.Timer(metrics.CatalogRender)()

	s.mu.RLock()
	v := View{
		Filter: s.filter,
		Theme:  s.theme,
		Total:  len(s.records),
	}
	for i, r := range s.records {
		if !s.filter.Matches(r) {
			continue
		}
		v.Rows = append(v.Rows, Row{Record: r, Index: i, Color: s.colors.Color(r.Category)})
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	subs := make([]func(View), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return v
}
