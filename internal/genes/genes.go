// Package genes provides the curated gene allow-list used to gate variant records.
package genes

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

//go:embed data/genes.txt
var bundled string

// Set is an immutable set of HUGO gene symbols.
type Set struct {
	symbols map[string]struct{}
}

// New creates a Set from the given symbols. Blank symbols are dropped.
func New(symbols ...string) Set {
	s := Set{symbols: make(map[string]struct{}, len(symbols))}
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		s.symbols[sym] = struct{}{}
	}
	return s
}

// Contains returns true if the gene is in the set.
func (s Set) Contains(gene string) bool {
	_, ok := s.symbols[gene]
	return ok
}

// Len returns the number of symbols in the set.
func (s Set) Len() int {
	return len(s.symbols)
}

// Symbols returns the symbols in sorted order.
func (s Set) Symbols() []string {
	out := make([]string, 0, len(s.symbols))
	for sym := range s.symbols {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// Default returns the gene list bundled with the binary.
func Default() Set {
	s, err := Parse(strings.NewReader(bundled))
	if err != nil {
		// Reading from a strings.Reader cannot fail.
		panic(err)
	}
	return s
}

// Load reads a newline-delimited gene list file.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("open gene list: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads one gene symbol per line. There is no header; blank lines,
// including a trailing one, are skipped.
func Parse(r io.Reader) (Set, error) {
	var symbols []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		symbols = append(symbols, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("reading gene list: %w", err)
	}
	return New(symbols...), nil
}
