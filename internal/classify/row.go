package classify

// Row is one persisted entry of the cardio table.
type Row struct {
	ID               int64  // Assigned by the sink, 0 until stored
	Gene             string // Gene symbol, always a member of the gene set
	RSID             string // dbSNP identifier
	CDNAChange       string // cDNA change
	Genotype         string // Derived genotype (e.g., "T/T", "G/A")
	SequenceOntology string // SO consequence term
	SIFTPrediction   string // SIFT prediction
	AlleleFrequency  string // gnomAD allele frequency
	Phenotype        string // ClinVar disease names
	Significance     string // ClinVar significance
	ClinVarID        string // ClinVar variation ID
	OMIMID           string // OMIM identifier
	NCBI             string // NCBI gene description
}

// Columns lists the cardio table columns in storage order, id first.
var Columns = []string{
	"id",
	"gene",
	"rsid",
	"cdnachange",
	"genotype",
	"sequence_ontology",
	"sift_pred",
	"allelefreq",
	"phenotype",
	"significance",
	"clinvarid",
	"omimid",
	"ncbi",
}

// Values returns the row's text fields in storage order, excluding id.
func (r *Row) Values() []string {
	return []string{
		r.Gene,
		r.RSID,
		r.CDNAChange,
		r.Genotype,
		r.SequenceOntology,
		r.SIFTPrediction,
		r.AlleleFrequency,
		r.Phenotype,
		r.Significance,
		r.ClinVarID,
		r.OMIMID,
		r.NCBI,
	}
}
