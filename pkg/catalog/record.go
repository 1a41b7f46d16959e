// Package catalog holds the tutorial records of a devquest dataset together with
// the active filter state, and derives the visible, colour-annotated view.
//
// A Store is the single owner of that state. Every mutation re-renders the view
// and notifies subscribers, so a view layer subscribes once and never has to
// decide for itself when to redraw.
package catalog

import "strings"

// Record is one tutorial row of the dataset.
type Record struct {
	Category string `json:"category"`
	Topic    string `json:"topic"`
	Keywords string `json:"keywords"`
	Filename string `json:"html"`
}

// searchText is the haystack the search query is matched against.
func (r Record) searchText() string {
	return strings.ToLower(r.Topic + " " + r.Keywords)
}

// FilterState is the transient user-controlled filter.
// Empty fields disable the corresponding filter.
type FilterState struct {
	Category string `json:"category,omitempty"`
	Query    string `json:"query,omitempty"`
}

// IsZero reports whether no filter is active.
func (f FilterState) IsZero() bool {
	return f.Category == "" && f.Query == ""
}

// Matches reports whether r passes both the category filter (case-insensitive
// equality) and the search filter (case-insensitive substring of topic and
// keywords).
func (f FilterState) Matches(r Record) bool {
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	if f.Query != "" && !strings.Contains(r.searchText(), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

// Row is a visible record annotated with its category colour.
type Row struct {
	Record
	// Index is the position of the record in the loaded dataset. It stays
	// stable across filter changes.
	Index int    `json:"index"`
	Color string `json:"color"`
}

// View is the result of a render: the filtered rows in dataset order.
type View struct {
	Rows   []Row       `json:"rows"`
	Filter FilterState `json:"filter"`
	Theme  Theme       `json:"theme"`
	// Total is the number of loaded records before filtering.
	Total int `json:"total"`
}

// Empty reports whether the view is in the "no results" state.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}
