package testutil

import (
	"testing"

	"github.com/vanderheijden86/devquest/pkg/catalog"
)

// AssertRecordCount verifies the expected number of records.
func AssertRecordCount(t *testing.T, records []catalog.Record, expected int) {
	t.Helper()
	if len(records) != expected {
		t.Errorf("expected %d records, got %d", expected, len(records))
	}
}

// AssertNoDuplicateFilenames verifies all document references are unique.
func AssertNoDuplicateFilenames(t *testing.T, records []catalog.Record) {
	t.Helper()
	seen := make(map[string]bool)
	for _, r := range records {
		if seen[r.Filename] {
			t.Errorf("duplicate filename: %s", r.Filename)
		}
		seen[r.Filename] = true
	}
}

// AssertOrderedSubset verifies that rows are a subsequence of records in
// dataset order, each row pointing at its record by index.
func AssertOrderedSubset(t *testing.T, records []catalog.Record, rows []catalog.Row) {
	t.Helper()
	last := -1
	for _, row := range rows {
		if row.Index <= last {
			t.Errorf("row %q out of dataset order (index %d after %d)", row.Topic, row.Index, last)
			return
		}
		if row.Index >= len(records) || records[row.Index] != row.Record {
			t.Errorf("row %q does not match record %d", row.Topic, row.Index)
			return
		}
		last = row.Index
	}
}

// AssertAllMatch verifies every row passes filter.
func AssertAllMatch(t *testing.T, rows []catalog.Row, filter catalog.FilterState) {
	t.Helper()
	for _, row := range rows {
		if !filter.Matches(row.Record) {
			t.Errorf("row %q does not match filter %+v", row.Topic, filter)
		}
	}
}

// CountByCategory returns the number of records per category.
func CountByCategory(records []catalog.Record) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}
