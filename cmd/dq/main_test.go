package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/config"
	"github.com/vanderheijden86/devquest/pkg/preview"
	"github.com/vanderheijden86/devquest/pkg/ui"
)

const testCSV = `Category,Topic,Keywords,html
Go,Goroutines,concurrency channels,go.html
Python,Decorators,functions wrappers,python.html
Rust,Ownership,borrow checker,rust.html
`

const goDoc = `<html><body>
<h1>Goroutines</h1>
<h1>Overview</h1>
<p>Lightweight threads managed by the runtime.</p>
<h1>Details</h1>
<p>Scheduler internals.</p>
</body></html>`

// setupDataset writes a dataset with one document and returns its directory.
func setupDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tutorials.csv"), []byte(testCSV), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "htmls"), 0o755); err != nil {
		t.Fatalf("mkdir htmls: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "htmls", "go.html"), []byte(goDoc), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return dir
}

// execute runs dq with args against an isolated config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	configPath, datasetFlag, docsFlag, themeFlag, verbose = "", "", "", "", false
	listJSON, listCategory, listSearch, listStats = false, "", "", false
	previewPlain, previewWidth = false, 80
	initDefaults = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	full := append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "--theme", "dark"}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveTheme(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	tests := []struct {
		pref    string
		hasDark func() bool
		want    catalog.Theme
	}{
		{"dark", light, catalog.ThemeDark},
		{"LIGHT", dark, catalog.ThemeLight},
		{"auto", dark, catalog.ThemeDark},
		{"auto", light, catalog.ThemeLight},
		{"", light, catalog.ThemeLight},
		{"auto", nil, catalog.ThemeDark},
	}
	for _, tt := range tests {
		if got := resolveTheme(tt.pref, tt.hasDark); got != tt.want {
			t.Errorf("resolveTheme(%q) = %s, want %s", tt.pref, got, tt.want)
		}
	}
}

func TestDocumentRef(t *testing.T) {
	records := []catalog.Record{{Topic: "Goroutines", Filename: "go.html"}}
	if got := documentRef(records, "goroutines"); got != "go.html" {
		t.Errorf("topic lookup = %q, want go.html", got)
	}
	if got := documentRef(records, "other.html"); got != "other.html" {
		t.Errorf("unknown argument should pass through, got %q", got)
	}
}

func TestWritePlainList(t *testing.T) {
	v := filteredView([]catalog.Record{
		{Category: "Go", Topic: "Goroutines", Keywords: "concurrency", Filename: "go.html"},
		{Category: "Rust", Topic: "Ownership", Keywords: "borrow", Filename: "rust.html"},
	}, catalog.ThemeDark, "", "")

	var buf bytes.Buffer
	if err := writePlainList(&buf, v, 80, false); err != nil {
		t.Fatalf("writePlainList: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Go  ") || !strings.Contains(lines[0], "Goroutines") || !strings.Contains(lines[0], "concurrency") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("unstyled output should not contain escape sequences")
	}
}

func TestWritePlainListEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := writePlainList(&buf, catalog.View{}, 80, false); err != nil {
		t.Fatalf("writePlainList: %v", err)
	}
	if strings.TrimSpace(buf.String()) != ui.EmptyStateText {
		t.Errorf("got %q, want %q", buf.String(), ui.EmptyStateText)
	}
}

func TestListCommandJSON(t *testing.T) {
	dir := setupDataset(t)
	out, err := execute(t, "list", "--dataset", dir, "--json", "--category", "go")
	if err != nil {
		t.Fatalf("list: %v\n%s", err, out)
	}

	var v catalog.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if v.Total != 3 {
		t.Errorf("total = %d, want 3", v.Total)
	}
	if len(v.Rows) != 1 || v.Rows[0].Topic != "Goroutines" {
		t.Errorf("unexpected rows %+v", v.Rows)
	}
	if v.Rows[0].Color == "" {
		t.Error("rows should carry their category colour")
	}
}

func TestListCommandSearchNoMatch(t *testing.T) {
	dir := setupDataset(t)
	out, err := execute(t, "list", "--dataset", dir, "--search", "haskell")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, ui.EmptyStateText) {
		t.Errorf("expected empty state, got %q", out)
	}
}

func TestListCommandMissingDataset(t *testing.T) {
	_, err := execute(t, "list", "--dataset", filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing dataset")
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := setupDataset(t)
	out, err := execute(t, "preview", "--dataset", dir, "--plain", "Goroutines")
	if err != nil {
		t.Fatalf("preview: %v\n%s", err, out)
	}
	if !strings.Contains(out, preview.OverviewTitle) {
		t.Errorf("missing title in %q", out)
	}
	if !strings.Contains(out, "Lightweight threads") {
		t.Errorf("missing overview text in %q", out)
	}
	if strings.Contains(out, "Details") {
		t.Errorf("preview should stop at the overview paragraph: %q", out)
	}
}

func TestPreviewCommandMissingDocument(t *testing.T) {
	dir := setupDataset(t)
	out, err := execute(t, "preview", "--dataset", dir, "--plain", "Ownership")
	if err == nil {
		t.Fatal("expected an error for a missing document")
	}
	if !strings.Contains(out, preview.MsgUnavailable) {
		t.Errorf("expected %q in %q", preview.MsgUnavailable, out)
	}
}

func TestInitDefaultsWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devquest", "config.yaml")
	out, err := execute(t, "init", "--defaults", "--config", path, "--theme", "light", "--dataset", "/data/tutorials.db")
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output should name the file, got %q", out)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UI.Theme != config.ThemeLight {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.Dataset != "/data/tutorials.db" {
		t.Errorf("dataset = %q", cfg.Dataset)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "dq v") {
		t.Errorf("unexpected version output %q", out)
	}
}
