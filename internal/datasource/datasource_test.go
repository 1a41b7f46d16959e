package datasource

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vanderheijden86/devquest/pkg/catalog"
)

const sampleCSV = "category,topic,keywords,html\n" +
	"Go,Goroutines,concurrency,go/goroutines.html\n" +
	"\n" +
	"Rust,\"Ownership, borrowing\",memory,rust/ownership.html\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func createSQLite(t *testing.T, path string, records []catalog.Record) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE tutorials (category TEXT, topic TEXT, keywords TEXT, html TEXT)`); err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if _, err := db.Exec(`INSERT INTO tutorials VALUES (?, ?, ?, ?)`, r.Category, r.Topic, r.Keywords, r.Filename); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.Exec(`INSERT INTO tutorials (category, topic) VALUES ('Zig', 'Comptime')`); err != nil {
		t.Fatal(err)
	}
}

// =============================================================================
// Delimited parsing
// =============================================================================

func TestParseDelimited(t *testing.T) {
	got, err := ParseDelimited(strings.NewReader(sampleCSV), ',')
	if err != nil {
		t.Fatalf("ParseDelimited: %v", err)
	}
	want := []catalog.Record{
		{Category: "Go", Topic: "Goroutines", Keywords: "concurrency", Filename: "go/goroutines.html"},
		{Category: "Rust", Topic: "Ownership, borrowing", Keywords: "memory", Filename: "rust/ownership.html"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestParseDelimited_HeaderVariants(t *testing.T) {
	in := "\ufeff HTML \tTopic\tCATEGORY\textra\n" +
		"a.html\tIntro\tBasics\tx\n" +
		"b.html\tShort row\n" +
		"\t\t\t\n"
	got, err := ParseDelimited(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatalf("ParseDelimited: %v", err)
	}
	want := []catalog.Record{
		{Category: "Basics", Topic: "Intro", Filename: "a.html"},
		{Topic: "Short row", Filename: "b.html"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestParseDelimited_Empty(t *testing.T) {
	got, err := ParseDelimited(strings.NewReader(""), ',')
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v; want no records", got, err)
	}
	got, err = ParseDelimited(strings.NewReader("category,topic,keywords,html\n"), ',')
	if err != nil || len(got) != 0 {
		t.Errorf("header only: got %v, %v", got, err)
	}
}

func TestWriteDelimitedRoundTrip(t *testing.T) {
	recs, _ := ParseDelimited(strings.NewReader(sampleCSV), ',')
	var buf bytes.Buffer
	if err := WriteDelimited(&buf, '\t', recs); err != nil {
		t.Fatal(err)
	}
	again, err := ParseDelimited(&buf, '\t')
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(recs, again) {
		t.Errorf("round trip changed records: %+v", again)
	}
}

// =============================================================================
// Detection and discovery
// =============================================================================

func TestDetect(t *testing.T) {
	tests := map[string]SourceType{
		"tutorials.csv":  SourceTypeCSV,
		"data/T.TSV":     SourceTypeTSV,
		"tutorials.db":   SourceTypeSQLite,
		"x.sqlite3":      SourceTypeSQLite,
		"tutorials":      SourceTypeCSV,
		"tutorials.json": SourceTypeCSV,
	}
	for path, want := range tests {
		if got := Detect(path); got != want {
			t.Errorf("Detect(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestDiscoverOrdersByPriority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tutorials.tsv", "category\ttopic\tkeywords\thtml\nGo\tT\tk\tt.html\n")
	createSQLite(t, filepath.Join(dir, "tutorials.db"), nil)
	writeFile(t, dir, "tutorials.csv", sampleCSV)
	writeFile(t, dir, "notes.txt", "ignored")

	sources, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	var types []SourceType
	for _, s := range sources {
		types = append(types, s.Type)
	}
	want := []SourceType{SourceTypeCSV, SourceTypeTSV, SourceTypeSQLite}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("types = %v, want %v", types, want)
	}

	if _, err := Discover(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoadRecords_DirectorySkipsInvalidSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tutorials.csv", "category,topic,keywords,html\n")
	writeFile(t, dir, "tutorials.tsv", "category\ttopic\tkeywords\thtml\nGo\tChannels\tsync\tgo/channels.html\n")

	recs, src, err := LoadRecords(dir)
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if src.Type != SourceTypeTSV {
		t.Errorf("selected %s, want the tsv (csv has no records)", src)
	}
	if len(recs) != 1 || recs[0].Topic != "Channels" {
		t.Errorf("records = %+v", recs)
	}
}

func TestLoadRecords_NoDataset(t *testing.T) {
	_, _, err := LoadRecords(t.TempDir())
	if !errors.Is(err, ErrNoDataset) {
		t.Errorf("expected ErrNoDataset, got %v", err)
	}
}

func TestLoadRecords_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.csv", sampleCSV)
	recs, src, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || src.RecordCount != 2 || !src.Valid {
		t.Errorf("recs=%d src=%s", len(recs), src)
	}
}

// =============================================================================
// SQLite
// =============================================================================

func TestSQLiteReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutorials.db")
	in := []catalog.Record{
		{Category: "Go", Topic: "Generics", Keywords: "type params", Filename: "go/generics.html"},
		{Category: "Docker", Topic: "Volumes", Keywords: "storage", Filename: "docker/volumes.html"},
	}
	createSQLite(t, path, in)

	reader, err := NewSQLiteReader(DataSource{Type: SourceTypeSQLite, Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteReader: %v", err)
	}
	defer reader.Close()

	got, err := reader.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	want := append(append([]catalog.Record{}, in...), catalog.Record{Category: "Zig", Topic: "Comptime"})
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	n, err := reader.CountRecords()
	if err != nil || n != 3 {
		t.Errorf("CountRecords = %d, %v", n, err)
	}
}

func TestNewSQLiteReader_WrongType(t *testing.T) {
	if _, err := NewSQLiteReader(DataSource{Type: SourceTypeCSV, Path: "x.csv"}); err == nil {
		t.Error("expected error for non-SQLite source")
	}
}

// =============================================================================
// Diff
// =============================================================================

func TestDiffRecords(t *testing.T) {
	before := []catalog.Record{
		{Topic: "A", Filename: "a.html"},
		{Topic: "B", Filename: "b.html"},
		{Topic: "C", Filename: "c.html"},
	}
	after := []catalog.Record{
		{Topic: "A", Filename: "a.html"},
		{Topic: "B2", Filename: "b.html"},
		{Topic: "D", Filename: "d.html"},
	}
	d := DiffRecords(before, after)
	want := RecordDiff{Added: []string{"d.html"}, Removed: []string{"c.html"}, Changed: []string{"b.html"}}
	if !reflect.DeepEqual(d, want) {
		t.Errorf("diff = %+v, want %+v", d, want)
	}
	if d.Summary() != "+1 -1 ~1" {
		t.Errorf("Summary() = %q", d.Summary())
	}
	if s := DiffRecords(before, before).Summary(); s != "no changes" {
		t.Errorf("identical sets: %q", s)
	}
}
