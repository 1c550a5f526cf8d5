package sink

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-cardio/internal/classify"
)

// DuckDB buffers rows for a run and writes them with the DuckDB Appender on Commit.
type DuckDB struct {
	db      *sql.DB
	path    string
	pending []classify.Row
	nextID  int64
	closed  bool
}

// OpenDuckDB opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func OpenDuckDB(path string) (*DuckDB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &DuckDB{db: db, path: path, nextID: 1}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// ensureSchema creates the cardio table if it doesn't exist and clears it.
func (s *DuckDB) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cardio (
		id BIGINT PRIMARY KEY,
		gene VARCHAR,
		rsid VARCHAR,
		cdnachange VARCHAR,
		genotype VARCHAR,
		sequence_ontology VARCHAR,
		sift_pred VARCHAR,
		allelefreq VARCHAR,
		phenotype VARCHAR,
		significance VARCHAR,
		clinvarid VARCHAR,
		omimid VARCHAR,
		ncbi VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM cardio")
	return err
}

// Path returns the database file path.
func (s *DuckDB) Path() string {
	return s.path
}

// DB returns the underlying *sql.DB for direct access.
func (s *DuckDB) DB() *sql.DB {
	return s.db
}

// Append buffers a row and assigns the next id.
func (s *DuckDB) Append(row *classify.Row) error {
	if s.closed {
		return errors.New("duckdb sink: append after close")
	}
	row.ID = s.nextID
	s.nextID++
	s.pending = append(s.pending, *row)
	return nil
}

// Commit batch-inserts buffered rows using the Appender API.
func (s *DuckDB) Commit() error {
	if len(s.pending) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", Table)
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	// A batch is written at most once, even when appending or flushing fails.
	defer func() { s.pending = s.pending[:0] }()

	for i := range s.pending {
		r := &s.pending[i]
		vals := r.Values()
		args := make([]driver.Value, 0, len(vals)+1)
		args = append(args, r.ID)
		for _, v := range vals {
			args = append(args, nullable(v))
		}
		if err := appender.AppendRow(args...); err != nil {
			// Close still flushes the rows appended before this one.
			return errors.Join(fmt.Errorf("append cardio row %d: %w", r.ID, err), appender.Close())
		}
	}

	// Close flushes the appender.
	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush appender: %w", err)
	}
	return nil
}

// Close commits buffered rows and closes the database connection.
func (s *DuckDB) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.Commit(), s.db.Close())
}

// Rows reads back all committed rows ordered by id.
func (s *DuckDB) Rows() ([]classify.Row, error) {
	return readAll(s.db)
}
