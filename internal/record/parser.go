package record

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source is the interface for anything that yields annotation records.
type Source interface {
	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)

	// Close closes the source and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

// Parser reads annotation records from a tab-separated export whose header
// line holds OakVar column keys.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	columns    []string // column key per field position
	headerLine string
}

// NewParser creates a new record parser for the given file.
// Supports both plain and gzipped files, and "-" for stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}

	p, err := newParser(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	p.file = file
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
// Gzipped streams are detected the same way as gzipped files.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	return newParser(r)
}

func newParser(r io.Reader) (*Parser, error) {
	p := &Parser{}
	br := bufio.NewReader(r)

	// Check for gzip magic number (0x1f, 0x8b). Peek returns fewer bytes
	// on short input, which is not an error here.
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.gzipReader = zr
		p.reader = bufio.NewReader(zr)
	} else {
		p.reader = br
	}

	if err := p.parseHeader(); err != nil {
		if p.gzipReader != nil {
			p.gzipReader.Close()
		}
		return nil, err
	}

	return p, nil
}

// readLine returns the next line without its terminator.
// The final line of a stream may lack a trailing newline.
func (p *Parser) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF || line == "" {
			return "", err
		}
	}
	p.lineNumber++
	return strings.TrimRight(line, "\r\n"), nil
}

// parseHeader reads the header line, skipping comments and blank lines.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.readLine()
		if err != nil {
			if err == io.EOF {
				return &ParseError{
					Line:    p.lineNumber,
					Message: "no header line found",
				}
			}
			return fmt.Errorf("read header: %w", err)
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p.headerLine = line
		p.columns = strings.Split(line, "\t")
		for i, col := range p.columns {
			p.columns[i] = strings.TrimSpace(col)
		}

		for _, col := range p.columns {
			if col == ColGene {
				return nil
			}
		}
		return &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("required column '%s' not found in header", ColGene),
		}
	}
}

// Next reads the next record.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.readLine()
		if err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("read record line: %w", err)
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		return p.parseLine(line), nil
	}
}

// parseLine maps the fields of a data line onto a Record.
// Fields beyond the header are ignored; missing trailing fields stay empty.
func (p *Parser) parseLine(line string) *Record {
	fields := strings.Split(line, "\t")

	rec := &Record{}
	for i, col := range p.columns {
		if i >= len(fields) {
			break
		}
		rec.Set(col, fields[i])
	}
	return rec
}

// Header returns the raw header line.
func (p *Parser) Header() string {
	return p.headerLine
}

// Columns returns the column keys in header order.
func (p *Parser) Columns() []string {
	return p.columns
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during record parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record parse error at line %d: %s", e.Line, e.Message)
}
