package sink

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/inodb/vibe-cardio/internal/classify"
)

// SQLite writes rows into a SQLite file inside one transaction per run.
type SQLite struct {
	db     *sql.DB
	tx     *sql.Tx
	insert *sql.Stmt
	path   string
	closed bool
}

// OpenSQLite opens or creates the SQLite store at path. The cardio table is
// created if absent and cleared; the clear is committed before the run's
// write transaction starts.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, path: path}
	if err := s.reset(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.begin(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) reset() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cardio (
		id integer NOT NULL PRIMARY KEY,
		gene text,
		rsid text,
		cdnachange text,
		genotype text,
		sequence_ontology text,
		sift_pred text,
		allelefreq text,
		phenotype text,
		significance text,
		clinvarid text,
		omimid text,
		ncbi text
	)`); err != nil {
		return fmt.Errorf("create cardio table: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM cardio`); err != nil {
		return fmt.Errorf("clear cardio table: %w", err)
	}
	return nil
}

func (s *SQLite) begin() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(classify.Columns)-1), ",")
	stmt, err := tx.Prepare(`INSERT INTO cardio (` + textColumns() + `) VALUES (` + placeholders + `)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	s.tx = tx
	s.insert = stmt
	return nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// DB returns the underlying *sql.DB for direct access.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Append inserts a row within the run's transaction.
func (s *SQLite) Append(row *classify.Row) error {
	if s.tx == nil {
		return errors.New("sqlite sink: append after commit")
	}

	vals := row.Values()
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = nullable(v)
	}

	res, err := s.insert.Exec(args...)
	if err != nil {
		return fmt.Errorf("insert cardio row: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read row id: %w", err)
	}
	row.ID = id
	return nil
}

// Commit commits the run's transaction. Committing twice is a no-op.
func (s *SQLite) Commit() error {
	if s.tx == nil {
		return nil
	}
	stmtErr := s.insert.Close()
	err := s.tx.Commit()
	s.tx, s.insert = nil, nil
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return stmtErr
}

// Close commits pending rows and closes the database.
func (s *SQLite) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return errors.Join(s.Commit(), s.db.Close())
}

// Rows reads back all stored rows ordered by id, including rows of the
// uncommitted run.
func (s *SQLite) Rows() ([]classify.Row, error) {
	if s.tx != nil {
		return readAll(s.tx)
	}
	return readAll(s.db)
}
