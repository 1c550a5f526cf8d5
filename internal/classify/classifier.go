// Package classify decides which annotated variants are clinically relevant
// for cardiac genes and projects them into output rows.
package classify

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-cardio/internal/genes"
	"github.com/inodb/vibe-cardio/internal/record"
)

// Zygosity values.
const (
	ZygosityHom = "hom"
	ZygosityHet = "het"
)

// SIFTDamaging is the SIFT prediction that qualifies a variant.
const SIFTDamaging = "Damaging"

// SignificanceFilter lists the ClinVar significance values that qualify a
// variant. Matching is exact.
var SignificanceFilter = []string{
	"Pathogenic",
	"Pathogenic/Likely pathogenic",
}

// Decision describes how a record was classified.
type Decision struct {
	GeneListed     bool // gene is in the gene set
	ClinVar        bool // ClinVar significance is in SignificanceFilter
	SIFT           bool // SIFT prediction is Damaging
	Arrhythmia     bool // CardioBoost arrhythmia score present
	Cardiomyopathy bool // CardioBoost cardiomyopathy score present
	Include        bool // record should be stored
}

// Classifier filters annotation records against a gene set.
type Classifier struct {
	genes  genes.Set
	logger *zap.Logger
}

// New creates a classifier for the given gene set.
func New(gs genes.Set) *Classifier {
	return &Classifier{
		genes:  gs,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for data-quality warnings.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Genes returns the gene set the classifier gates on.
func (c *Classifier) Genes() genes.Set {
	return c.genes
}

// Evaluate classifies a record. A gene outside the gene set excludes the
// record without evaluating any signal.
func (c *Classifier) Evaluate(rec *record.Record) Decision {
	var d Decision
	if !c.genes.Contains(rec.Gene) {
		return d
	}
	d.GeneListed = true

	d.ClinVar = isQualifyingSignificance(rec.ClinVarSignificance)
	d.SIFT = rec.SIFTPrediction == SIFTDamaging
	d.Arrhythmia = rec.CardioBoostArrhythmia != ""
	d.Cardiomyopathy = rec.CardioBoostCardiomyopathy != ""

	d.Include = d.ClinVar || d.SIFT || d.Arrhythmia || d.Cardiomyopathy
	return d
}

// ShouldInclude returns true if the record's gene is listed and at least one
// pathogenicity signal holds.
func (c *Classifier) ShouldInclude(rec *record.Record) bool {
	return c.Evaluate(rec).Include
}

// Project maps a record onto a Row. Callers are expected to have checked
// ShouldInclude first.
func (c *Classifier) Project(rec *record.Record) Row {
	zygosity, ok := NormalizeZygosity(rec.Zygosity)
	if !ok {
		c.logger.Warn("unknown zygosity, treating as heterozygous",
			zap.String("gene", rec.Gene),
			zap.String("rsid", rec.RSID),
			zap.String("zygosity", rec.Zygosity))
	}

	return Row{
		Gene:             rec.Gene,
		RSID:             rec.RSID,
		CDNAChange:       rec.CDNAChange,
		Genotype:         DeriveGenotype(rec.Ref, rec.Alt, zygosity),
		SequenceOntology: rec.SequenceOntology,
		SIFTPrediction:   rec.SIFTPrediction,
		AlleleFrequency:  rec.AlleleFrequency,
		Phenotype:        rec.ClinVarDiseases,
		Significance:     rec.ClinVarSignificance,
		ClinVarID:        rec.ClinVarID,
		OMIMID:           rec.OMIMID,
		NCBI:             rec.NCBIDescription,
	}
}

// Handle classifies a record and projects it if it qualifies.
func (c *Classifier) Handle(rec *record.Record) (Row, bool) {
	if !c.ShouldInclude(rec) {
		return Row{}, false
	}
	return c.Project(rec), true
}

// DeriveGenotype returns "alt/alt" for homozygous variants and "alt/ref" otherwise.
func DeriveGenotype(ref, alt, zygosity string) string {
	if zygosity == ZygosityHom {
		return alt + "/" + alt
	}
	return alt + "/" + ref
}

// NormalizeZygosity maps an empty zygosity to "het". The second return value
// is false for values other than "hom", "het" or empty; those are also
// mapped to "het".
func NormalizeZygosity(z string) (string, bool) {
	switch z {
	case "":
		return ZygosityHet, true
	case ZygosityHom, ZygosityHet:
		return z, true
	default:
		return ZygosityHet, false
	}
}

func isQualifyingSignificance(sig string) bool {
	for _, s := range SignificanceFilter {
		if sig == s {
			return true
		}
	}
	return false
}
