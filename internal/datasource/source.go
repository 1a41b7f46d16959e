// Package datasource discovers and loads devquest tutorial datasets. A dataset
// is either a delimited text file (CSV or TSV) with a header row, or a SQLite
// database holding a tutorials table.
package datasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/debug"
	"github.com/vanderheijden86/devquest/pkg/metrics"
)

// SourceType identifies the format of a dataset.
type SourceType string

const (
	// SourceTypeCSV is a comma separated file (tutorials.csv)
	SourceTypeCSV SourceType = "csv"
	// SourceTypeTSV is a tab separated file (tutorials.tsv)
	SourceTypeTSV SourceType = "tsv"
	// SourceTypeSQLite is a SQLite database (tutorials.db)
	SourceTypeSQLite SourceType = "sqlite"
)

// Priority values for discovered sources (higher = preferred)
const (
	PriorityCSV    = 100
	PriorityTSV    = 80
	PrioritySQLite = 50
)

// ErrNoDataset is returned by Discover-based loading when a directory holds no
// recognised dataset.
var ErrNoDataset = errors.New("no tutorial dataset found")

// DataSource describes a dataset file.
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time"`
	Size     int64      `json:"size"`
	// Valid and ValidationError are set by ValidateSource.
	Valid           bool   `json:"valid"`
	ValidationError string `json:"validation_error,omitempty"`
	RecordCount     int    `json:"record_count"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, records=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.RecordCount, status)
}

// Detect picks the source type from the file extension. Unknown extensions
// are read as CSV.
func Detect(path string) SourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return SourceTypeTSV
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite
	default:
		return SourceTypeCSV
	}
}

var candidates = []struct {
	name     string
	typ      SourceType
	priority int
}{
	{"tutorials.csv", SourceTypeCSV, PriorityCSV},
	{"tutorials.tsv", SourceTypeTSV, PriorityTSV},
	{"tutorials.db", SourceTypeSQLite, PrioritySQLite},
}

// Discover finds the dataset files in dir, best first.
func Discover(dir string) ([]DataSource, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("dataset directory: %w", err)
	}

	var sources []DataSource
	for _, c := range candidates {
		path := filepath.Join(dir, c.name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		sources = append(sources, DataSource{
			Type:     c.typ,
			Path:     path,
			Priority: c.priority,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		})
		debug.Log("datasource: found %s (%s, mod=%s)", path, c.typ, info.ModTime().Format(time.RFC3339))
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority > sources[j].Priority
	})
	return sources, nil
}

// ValidateSource loads s and records whether it produced any records.
func ValidateSource(s *DataSource) error {
	records, err := LoadFromSource(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.RecordCount = len(records)
	if len(records) == 0 {
		s.Valid = false
		s.ValidationError = "no records"
		return fmt.Errorf("%s: no records", s.Path)
	}
	s.Valid = true
	s.ValidationError = ""
	return nil
}

// SelectBestSource returns the highest-priority valid source.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	for _, s := range sources {
		if s.Valid {
			return s, nil
		}
	}
	return DataSource{}, ErrNoDataset
}

// Resolve turns a configured dataset location into a source. A directory is
// searched with Discover; a file is used as is.
func Resolve(path string) (DataSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("dataset: %w", err)
	}
	if !info.IsDir() {
		return DataSource{
			Type:    Detect(path),
			Path:    path,
			ModTime: info.ModTime(),
			Size:    info.Size(),
		}, nil
	}

	sources, err := Discover(path)
	if err != nil {
		return DataSource{}, err
	}
	for i := range sources {
		if err := ValidateSource(&sources[i]); err != nil {
			debug.Log("datasource: validation failed for %s: %v", sources[i].Path, err)
		}
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		return DataSource{}, fmt.Errorf("%w in %s", err, path)
	}
	return best, nil
}

// LoadRecords resolves path and loads its records.
func LoadRecords(path string) ([]catalog.Record, DataSource, error) {
	src, err := Resolve(path)
	if err != nil {
		return nil, DataSource{}, err
	}
	records, err := LoadFromSource(src)
	if err != nil {
		return nil, src, err
	}
	src.RecordCount = len(records)
	src.Valid = true
	return records, src, nil
}

// LoadFromSource reads every record of source, dispatching on its type.
func LoadFromSource(source DataSource) ([]catalog.Record, error) {
	defer metrics.Timer(metrics.DatasetLoad)()

	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadRecords()

	case SourceTypeCSV, SourceTypeTSV:
		f, err := os.Open(source.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		comma := ','
		if source.Type == SourceTypeTSV {
			comma = '\t'
		}
		records, err := ParseDelimited(f, comma)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source.Path, err)
		}
		return records, nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
