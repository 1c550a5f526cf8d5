// Package record provides the per-variant annotation record and readers for record streams.
package record

// OakVar column keys for the annotation fields consumed by the classifier.
const (
	ColGene              = "base__hugo"
	ColRSID              = "dbsnp__rsid"
	ColCDNAChange        = "base__cchange"
	ColRefBase           = "base__ref_base"
	ColAltBase           = "base__alt_base"
	ColZygosity          = "vcfinfo__zygosity"
	ColSequenceOntology  = "base__so"
	ColSIFTPrediction    = "sift__prediction"
	ColAlleleFrequency   = "gnomad__af"
	ColClinVarSig        = "clinvar__sig"
	ColClinVarDiseases   = "clinvar__disease_names"
	ColClinVarID         = "clinvar__id"
	ColCardioBoostArrhy  = "cardioboost__arrhythmias"
	ColCardioBoostCardio = "cardioboost__cardiomyopathy"
	ColOMIMID            = "omim__omim_id"
	ColNCBIDescription   = "ncbigene__ncbi_desc"
)

// Columns lists every column key a Record carries, in export order.
var Columns = []string{
	ColGene,
	ColRSID,
	ColCDNAChange,
	ColRefBase,
	ColAltBase,
	ColZygosity,
	ColSequenceOntology,
	ColSIFTPrediction,
	ColAlleleFrequency,
	ColClinVarSig,
	ColClinVarDiseases,
	ColClinVarID,
	ColCardioBoostArrhy,
	ColCardioBoostCardio,
	ColOMIMID,
	ColNCBIDescription,
}

// Record holds the annotations of a single variant. Absent values are empty strings.
type Record struct {
	Gene                      string // HUGO gene symbol
	RSID                      string // dbSNP identifier (e.g., "rs123")
	CDNAChange                string // cDNA change (e.g., "c.34G>T")
	Ref                       string // Reference base
	Alt                       string // Alternate base
	Zygosity                  string // "hom", "het" or empty
	SequenceOntology          string // SO consequence term
	SIFTPrediction            string // "Damaging", "Tolerated" or empty
	AlleleFrequency           string // gnomAD allele frequency
	ClinVarSignificance       string // ClinVar clinical significance
	ClinVarDiseases           string // ClinVar disease names
	ClinVarID                 string // ClinVar variation ID
	CardioBoostArrhythmia     string // CardioBoost arrhythmia score
	CardioBoostCardiomyopathy string // CardioBoost cardiomyopathy score
	OMIMID                    string // OMIM identifier
	NCBIDescription           string // NCBI gene description
}

// FromMap builds a Record from a key-value record keyed by OakVar column names.
// Missing keys leave the corresponding field empty.
func FromMap(m map[string]string) Record {
	var r Record
	for k, v := range m {
		r.Set(k, v)
	}
	return r
}

// Set assigns the field for the given column key. Unknown keys are ignored.
func (r *Record) Set(col, value string) {
	if f := r.field(col); f != nil {
		*f = value
	}
}

// Get returns the value of the field for the given column key.
func (r *Record) Get(col string) string {
	if f := r.field(col); f != nil {
		return *f
	}
	return ""
}

func (r *Record) field(col string) *string {
	switch col {
	case ColGene:
		return &r.Gene
	case ColRSID:
		return &r.RSID
	case ColCDNAChange:
		return &r.CDNAChange
	case ColRefBase:
		return &r.Ref
	case ColAltBase:
		return &r.Alt
	case ColZygosity:
		return &r.Zygosity
	case ColSequenceOntology:
		return &r.SequenceOntology
	case ColSIFTPrediction:
		return &r.SIFTPrediction
	case ColAlleleFrequency:
		return &r.AlleleFrequency
	case ColClinVarSig:
		return &r.ClinVarSignificance
	case ColClinVarDiseases:
		return &r.ClinVarDiseases
	case ColClinVarID:
		return &r.ClinVarID
	case ColCardioBoostArrhy:
		return &r.CardioBoostArrhythmia
	case ColCardioBoostCardio:
		return &r.CardioBoostCardiomyopathy
	case ColOMIMID:
		return &r.OMIMID
	case ColNCBIDescription:
		return &r.NCBIDescription
	}
	return nil
}
