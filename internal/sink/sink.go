// Package sink persists classified rows into the cardio table.
// The default store is a SQLite file; DuckDB is available as a columnar alternative.
package sink

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inodb/vibe-cardio/internal/classify"
)

// Table is the name of the output table.
const Table = "cardio"

// Sink receives rows for a single run.
type Sink interface {
	// Append stores a row and sets its ID.
	Append(row *classify.Row) error

	// Commit makes all appended rows durable.
	Commit() error

	// Close commits any pending rows and releases the store.
	Close() error
}

// Format identifies a store backend.
type Format string

// Supported store formats.
const (
	FormatSQLite Format = "sqlite"
	FormatDuckDB Format = "duckdb"
)

// ParseFormat validates a format name. An empty name selects SQLite.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", string(FormatSQLite):
		return FormatSQLite, nil
	case string(FormatDuckDB):
		return FormatDuckDB, nil
	default:
		return "", fmt.Errorf("unknown store format %q (want sqlite or duckdb)", s)
	}
}

// Extension returns the file extension used for the format.
func (f Format) Extension() string {
	if f == FormatDuckDB {
		return ".duckdb"
	}
	return ".sqlite"
}

// DetectFormat guesses the store format from a file name.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".ddb":
		return FormatDuckDB
	default:
		return FormatSQLite
	}
}

// ResultPath returns the output file path for a run: <dir>/<run>_longevity.<ext>.
func ResultPath(dir, runName string, f Format) string {
	return filepath.Join(dir, runName+"_longevity"+f.Extension())
}

// Open opens a sink of the given format at path, creating the cardio table
// if needed and clearing any rows from a previous run.
func Open(f Format, path string) (Sink, error) {
	switch f {
	case FormatSQLite:
		return OpenSQLite(path)
	case FormatDuckDB:
		return OpenDuckDB(path)
	default:
		return nil, fmt.Errorf("unknown store format %q", f)
	}
}

// ReadRows reads every row of a store file ordered by id.
func ReadRows(path string) ([]classify.Row, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("result store: %w", err)
	}

	driver := "sqlite"
	if DetectFormat(path) == FormatDuckDB {
		driver = "duckdb"
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	defer db.Close()

	return readAll(db)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// readAll scans the cardio table. NULL columns become empty strings.
func readAll(db queryer) ([]classify.Row, error) {
	rows, err := db.Query(`SELECT ` + strings.Join(classify.Columns, ", ") +
		` FROM ` + Table + ` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", Table, err)
	}
	defer rows.Close()

	var out []classify.Row
	for rows.Next() {
		var id int64
		fields := make([]sql.NullString, len(classify.Columns)-1)
		dest := make([]any, 0, len(classify.Columns))
		dest = append(dest, &id)
		for i := range fields {
			dest = append(dest, &fields[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", Table, err)
		}

		out = append(out, classify.Row{
			ID:               id,
			Gene:             fields[0].String,
			RSID:             fields[1].String,
			CDNAChange:       fields[2].String,
			Genotype:         fields[3].String,
			SequenceOntology: fields[4].String,
			SIFTPrediction:   fields[5].String,
			AlleleFrequency:  fields[6].String,
			Phenotype:        fields[7].String,
			Significance:     fields[8].String,
			ClinVarID:        fields[9].String,
			OMIMID:           fields[10].String,
			NCBI:             fields[11].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", Table, err)
	}
	return out, nil
}

// nullable returns nil for empty values so they are stored as SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// textColumns returns the non-id columns joined for an INSERT column list.
func textColumns() string {
	return strings.Join(classify.Columns[1:], ", ")
}
