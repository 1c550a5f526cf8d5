// Package output provides formatters for stored cardio rows.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-cardio/internal/classify"
)

// Tabs or newlines in free-text fields would break the row.
var fieldSanitizer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// TabWriter writes cardio rows in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: classify.Columns,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString("#" + strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single row. Empty values are written as "-".
func (tw *TabWriter) Write(row *classify.Row) error {
	vals := row.Values()
	fields := make([]string, 0, len(vals)+1)
	fields = append(fields, strconv.FormatInt(row.ID, 10))
	for _, v := range vals {
		if v == "" {
			v = "-"
		}
		fields = append(fields, fieldSanitizer.Replace(v))
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
