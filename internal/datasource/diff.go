package datasource

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/devquest/pkg/catalog"
)

// RecordDiff summarises how a reloaded dataset differs from the previous one.
// Records are keyed by document filename.
type RecordDiff struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Changed []string `json:"changed,omitempty"`
}

// IsEmpty returns true if the datasets hold the same records
func (d RecordDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Summary returns a short human-readable summary such as "+2 -1 ~3".
func (d RecordDiff) Summary() string {
	if d.IsEmpty() {
		return "no changes"
	}
	var parts []string
	if n := len(d.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d", n))
	}
	if n := len(d.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d", n))
	}
	if n := len(d.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d", n))
	}
	return strings.Join(parts, " ")
}

// DiffRecords compares two record sets. Output slices follow the order of the
// set each key was found in.
func DiffRecords(before, after []catalog.Record) RecordDiff {
	old := make(map[string]catalog.Record, len(before))
	for _, r := range before {
		old[r.Filename] = r
	}

	var d RecordDiff
	seen := make(map[string]bool, len(after))
	for _, r := range after {
		seen[r.Filename] = true
		prev, ok := old[r.Filename]
		switch {
		case !ok:
			d.Added = append(d.Added, r.Filename)
		case prev != r:
			d.Changed = append(d.Changed, r.Filename)
		}
	}
	for _, r := range before {
		if !seen[r.Filename] {
			d.Removed = append(d.Removed, r.Filename)
		}
	}
	return d
}
