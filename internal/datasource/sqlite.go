package datasource

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/debug"
)

// SQLiteReader provides read access to a tutorials SQLite database
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA cache_size = -16000", // 16MB cache
		"PRAGMA temp_store = MEMORY",
	} {
		if _, err := db.Exec(pragma); err != nil {
			debug.Log("datasource: %s: %v", pragma, err)
		}
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadRecords reads every tutorial in insertion order.
func (r *SQLiteReader) LoadRecords() ([]catalog.Record, error) {
	rows, err := r.db.Query(`
		SELECT category, topic, keywords, html
		FROM tutorials
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []catalog.Record
	for rows.Next() {
		var category, topic, keywords, html sql.NullString
		if err := rows.Scan(&category, &topic, &keywords, &html); err != nil {
			return nil, fmt.Errorf("scanning tutorial: %w", err)
		}
		records = append(records, catalog.Record{
			Category: category.String,
			Topic:    topic.String,
			Keywords: keywords.String,
			Filename: html.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tutorials: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of tutorials
func (r *SQLiteReader) CountRecords() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tutorials").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
