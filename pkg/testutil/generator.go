// Package testutil generates tutorial datasets and documents for tests and
// benchmarks. All generators produce deterministic output for reproducible
// tests.
package testutil

import (
	"fmt"
	"html"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/devquest/internal/datasource"
	"github.com/vanderheijden86/devquest/pkg/catalog"
)

// DefaultCategories is the category mix used when none is configured.
var DefaultCategories = []string{"Go", "Python", "Rust", "JavaScript", "SQL", "Kubernetes"}

var topics = []string{
	"Getting Started", "Concurrency", "Error Handling", "Testing", "Modules",
	"Generics", "Closures", "Iterators", "Networking", "Profiling",
}

var keywords = []string{
	"basics", "performance", "patterns", "tooling", "memory", "async",
	"types", "debugging", "deployment", "security",
}

// GeneratorConfig controls dataset generation.
type GeneratorConfig struct {
	Seed       int64    // Random seed for determinism (0 = use 42)
	Categories []string // Category mix (nil = DefaultCategories)
	// NoOverviewRatio is the share of documents written without an
	// "Overview" heading.
	NoOverviewRatio float64
	// MissingDocRatio is the share of records whose document is not written.
	MissingDocRatio float64
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42, // Deterministic
		Categories: DefaultCategories,
	}
}

// Generator creates tutorial fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Records creates n records. Filenames are unique; categories cycle through
// the configured mix so every category appears once n reaches its length.
func (g *Generator) Records(n int) []catalog.Record {
	records := make([]catalog.Record, n)
	for i := range records {
		cat := g.cfg.Categories[i%len(g.cfg.Categories)]
		topic := topics[g.rng.Intn(len(topics))]
		kw := []string{
			keywords[g.rng.Intn(len(keywords))],
			keywords[g.rng.Intn(len(keywords))],
		}
		records[i] = catalog.Record{
			Category: cat,
			Topic:    fmt.Sprintf("%s %s #%d", cat, topic, i),
			Keywords: strings.Join(kw, " "),
			Filename: fmt.Sprintf("%s-%d.html", slug(cat), i),
		}
	}
	return records
}

// Document returns the HTML page of r. With overview set the page has an
// "Overview" heading followed by a paragraph; otherwise it has none.
func Document(r catalog.Record, overview bool) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><title>")
	sb.WriteString(html.EscapeString(r.Topic))
	sb.WriteString("</title></head><body>\n<h1>")
	sb.WriteString(html.EscapeString(r.Topic))
	sb.WriteString("</h1>\n")
	if overview {
		sb.WriteString("<h1>Overview</h1>\n<p>")
		sb.WriteString(html.EscapeString(OverviewText(r)))
		sb.WriteString("</p>\n")
	}
	sb.WriteString("<h1>Details</h1>\n<p>Covers ")
	sb.WriteString(html.EscapeString(r.Keywords))
	sb.WriteString(".</p>\n<img src=\"../images/diagram.png\">\n</body></html>\n")
	return sb.String()
}

// OverviewText is the overview paragraph Document writes for r.
func OverviewText(r catalog.Record) string {
	return fmt.Sprintf("An introduction to %s.", r.Topic)
}

// Dataset is a dataset written to disk.
type Dataset struct {
	Dir     string // directory holding the dataset file
	Path    string // the dataset file
	DocsDir string // documents directory ("htmls" next to the dataset)
	Records []catalog.Record
	// WithOverview lists the filenames whose document has an overview.
	WithOverview map[string]bool
	// Missing lists the filenames with no document on disk.
	Missing map[string]bool
}

// WriteDataset writes records as dir/tutorials.csv and their documents under
// dir/htmls, honouring the configured overview and missing ratios.
func (g *Generator) WriteDataset(dir string, records []catalog.Record) (Dataset, error) {
	ds := Dataset{
		Dir:          dir,
		Path:         filepath.Join(dir, "tutorials.csv"),
		DocsDir:      filepath.Join(dir, "htmls"),
		Records:      records,
		WithOverview: make(map[string]bool),
		Missing:      make(map[string]bool),
	}
	if err := os.MkdirAll(ds.DocsDir, 0o755); err != nil {
		return ds, err
	}

	f, err := os.Create(ds.Path)
	if err != nil {
		return ds, err
	}
	if err := datasource.WriteDelimited(f, ',', records); err != nil {
		f.Close()
		return ds, fmt.Errorf("writing %s: %w", ds.Path, err)
	}
	if err := f.Close(); err != nil {
		return ds, err
	}

	for _, r := range records {
		if g.rng.Float64() < g.cfg.MissingDocRatio {
			ds.Missing[r.Filename] = true
			continue
		}
		overview := g.rng.Float64() >= g.cfg.NoOverviewRatio
		if overview {
			ds.WithOverview[r.Filename] = true
		}
		path := filepath.Join(ds.DocsDir, filepath.FromSlash(r.Filename))
		if err := os.WriteFile(path, []byte(Document(r, overview)), 0o644); err != nil {
			return ds, err
		}
	}
	return ds, nil
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}

// ============================================================================
// Quick helpers
// ============================================================================

// QuickRecords creates n records with the default config.
func QuickRecords(n int) []catalog.Record {
	return NewDefault().Records(n)
}

// Empty returns an empty record slice.
func Empty() []catalog.Record {
	return []catalog.Record{}
}

// Single returns a single record.
func Single() []catalog.Record {
	return []catalog.Record{{
		Category: "Go",
		Topic:    "Goroutines",
		Keywords: "concurrency channels",
		Filename: "goroutines.html",
	}}
}
