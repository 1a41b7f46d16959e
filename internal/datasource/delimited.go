package datasource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vanderheijden86/devquest/pkg/catalog"
)

// Column names of the dataset header, matched case-insensitively.
const (
	ColumnCategory = "category"
	ColumnTopic    = "topic"
	ColumnKeywords = "keywords"
	ColumnHTML     = "html"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseDelimited reads a header row followed by one record per row. Missing
// columns read as empty strings, blank rows are skipped and rows may have more
// or fewer fields than the header.
func ParseDelimited(r io.Reader, comma rune) ([]catalog.Record, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	idx := map[string]int{
		ColumnCategory: -1,
		ColumnTopic:    -1,
		ColumnKeywords: -1,
		ColumnHTML:     -1,
	}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if j, ok := idx[key]; ok && j < 0 {
			idx[key] = i
		}
	}

	field := func(row []string, col string) string {
		i := idx[col]
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []catalog.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, fmt.Errorf("reading row: %w", err)
		}
		if blankRow(row) {
			continue
		}
		records = append(records, catalog.Record{
			Category: field(row, ColumnCategory),
			Topic:    field(row, ColumnTopic),
			Keywords: field(row, ColumnKeywords),
			Filename: field(row, ColumnHTML),
		})
	}
	return records, nil
}

// blankRow reports whether every field is empty. encoding/csv already drops
// fully empty lines; this catches rows made only of separators.
func blankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}

// WriteDelimited writes records with a header row.
func WriteDelimited(w io.Writer, comma rune, records []catalog.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write([]string{ColumnCategory, ColumnTopic, ColumnKeywords, ColumnHTML}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Category, r.Topic, r.Keywords, r.Filename}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
