// Package pipeline drives annotation records through the classifier into a sink.
//
// A run has three phases: Open loads the gene set and opens the sink, Handle
// is called once per record, and Close commits and releases the sink.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-cardio/internal/classify"
	"github.com/inodb/vibe-cardio/internal/genes"
	"github.com/inodb/vibe-cardio/internal/record"
	"github.com/inodb/vibe-cardio/internal/sink"
)

// Config holds the settings for a run.
type Config struct {
	OutputDir string      // directory for the result store
	RunName   string      // prefix of the result file name
	GenesPath string      // gene list override; the bundled list is used when empty
	Format    sink.Format // store backend, SQLite when empty
	Logger    *zap.Logger // nil disables logging
}

// ResultPath returns the store path for the configuration.
func (c Config) ResultPath() string {
	f := c.Format
	if f == "" {
		f = sink.FormatSQLite
	}
	return sink.ResultPath(c.OutputDir, c.RunName, f)
}

// Stats counts what happened to the records of a run.
type Stats struct {
	Records           int // records handled
	GeneFiltered      int // excluded because the gene is not listed
	NoSignal          int // listed gene but no pathogenicity signal
	Written           int // rows appended to the sink
	ZygosityAnomalies int // rows whose zygosity was not hom, het or empty
}

// Session is an open run.
type Session struct {
	classifier *classify.Classifier
	sink       sink.Sink
	path       string
	logger     *zap.Logger
	stats      Stats
	closed     bool
}

// Open loads the gene set and opens the sink for a run.
// Failure to do either aborts the run.
func Open(cfg Config) (*Session, error) {
	if cfg.RunName == "" {
		return nil, errors.New("run name is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gs := genes.Default()
	if cfg.GenesPath != "" {
		var err error
		gs, err = genes.Load(cfg.GenesPath)
		if err != nil {
			return nil, err
		}
	}
	if gs.Len() == 0 {
		logger.Warn("gene list is empty, no records will be stored")
	}

	format := cfg.Format
	if format == "" {
		format = sink.FormatSQLite
	}
	path := cfg.ResultPath()
	out, err := sink.Open(format, path)
	if err != nil {
		return nil, fmt.Errorf("open result store %s: %w", path, err)
	}

	logger.Info("session opened",
		zap.String("store", path),
		zap.String("format", string(format)),
		zap.Int("genes", gs.Len()))

	return NewSession(classify.New(gs), out, logger), nil
}

// NewSession wraps an existing classifier and sink.
func NewSession(c *classify.Classifier, out sink.Sink, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.SetLogger(logger)

	s := &Session{
		classifier: c,
		sink:       out,
		logger:     logger,
	}
	if p, ok := out.(interface{ Path() string }); ok {
		s.path = p.Path()
	}
	return s
}

// Handle classifies one record and appends it to the sink if it qualifies.
// It returns the stored row, or nil if the record was excluded.
func (s *Session) Handle(rec *record.Record) (*classify.Row, error) {
	if s.closed {
		return nil, errors.New("session is closed")
	}
	s.stats.Records++

	d := s.classifier.Evaluate(rec)
	if !d.Include {
		if d.GeneListed {
			s.stats.NoSignal++
		} else {
			s.stats.GeneFiltered++
		}
		return nil, nil
	}

	if _, ok := classify.NormalizeZygosity(rec.Zygosity); !ok {
		s.stats.ZygosityAnomalies++
	}

	row := s.classifier.Project(rec)
	if err := s.sink.Append(&row); err != nil {
		return nil, fmt.Errorf("store %s %s: %w", rec.Gene, rec.RSID, err)
	}
	s.stats.Written++

	s.logger.Debug("stored variant",
		zap.String("gene", row.Gene),
		zap.String("rsid", row.RSID),
		zap.String("genotype", row.Genotype),
		zap.Bool("clinvar", d.ClinVar),
		zap.Bool("sift", d.SIFT),
		zap.Bool("cardioboost_arrhythmia", d.Arrhythmia),
		zap.Bool("cardioboost_cardiomyopathy", d.Cardiomyopathy))

	return &row, nil
}

// Close commits the appended rows and closes the sink. Calling Close more
// than once is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.sink.Close()
	if err != nil {
		s.logger.Error("closing result store", zap.String("store", s.path), zap.Error(err))
		return fmt.Errorf("close result store: %w", err)
	}

	s.logger.Info("session closed",
		zap.String("store", s.path),
		zap.Int("records", s.stats.Records),
		zap.Int("written", s.stats.Written),
		zap.Int("gene_filtered", s.stats.GeneFiltered),
		zap.Int("no_signal", s.stats.NoSignal),
		zap.Int("zygosity_anomalies", s.stats.ZygosityAnomalies))
	return nil
}

// Stats returns the counters accumulated so far.
func (s *Session) Stats() Stats {
	return s.stats
}

// Path returns the result store path, if the sink exposes one.
func (s *Session) Path() string {
	return s.path
}

// Run feeds every record from src through the session in order.
// The session is left open; the caller closes it.
func Run(src record.Source, s *Session) error {
	for {
		rec, err := src.Next()
		if err != nil {
			return fmt.Errorf("read record at line %d: %w", src.LineNumber(), err)
		}
		if rec == nil {
			break
		}
		if _, err := s.Handle(rec); err != nil {
			return err
		}
	}

	if s.stats.Records == 0 {
		s.logger.Info("0 records processed")
	}
	return nil
}

// Process runs src through s and closes s on every exit path, including a
// panic in the source or sink. Close errors are joined with the run error.
func Process(src record.Source, s *Session) (err error) {
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return Run(src, s)
}
