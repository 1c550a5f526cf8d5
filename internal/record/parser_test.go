package record

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseRecords(t *testing.T) {
	parser, err := NewParser(filepath.Join("testdata", "sample.tsv"))
	require.NoError(t, err)
	defer parser.Close()

	assert.Equal(t, Columns, parser.Columns())

	// First record (TTN, homozygous, ClinVar pathogenic)
	rec, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "TTN", rec.Gene)
	assert.Equal(t, "rs123", rec.RSID)
	assert.Equal(t, "c.100C>T", rec.CDNAChange)
	assert.Equal(t, "C", rec.Ref)
	assert.Equal(t, "T", rec.Alt)
	assert.Equal(t, "hom", rec.Zygosity)
	assert.Equal(t, "missense_variant", rec.SequenceOntology)
	assert.Equal(t, "Tolerated", rec.SIFTPrediction)
	assert.Equal(t, "0.0001", rec.AlleleFrequency)
	assert.Equal(t, "Pathogenic", rec.ClinVarSignificance)
	assert.Equal(t, "Dilated cardiomyopathy", rec.ClinVarDiseases)
	assert.Equal(t, "12345", rec.ClinVarID)
	assert.Empty(t, rec.CardioBoostArrhythmia)
	assert.Empty(t, rec.CardioBoostCardiomyopathy)
	assert.Equal(t, "188840", rec.OMIMID)
	assert.Equal(t, "titin", rec.NCBIDescription)

	// Second record (MYH7, SIFT damaging)
	rec, err = parser.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "MYH7", rec.Gene)
	assert.Equal(t, "Damaging", rec.SIFTPrediction)

	// Remaining records, blank line skipped
	var genes []string
	for {
		rec, err := parser.Next()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		genes = append(genes, rec.Gene)
	}
	assert.Equal(t, []string{"BRCA1", "SCN5A", "KCNQ1"}, genes)
}

func TestParser_ShortRow(t *testing.T) {
	input := ColGene + "\t" + ColRefBase + "\t" + ColAltBase + "\t" + ColOMIMID + "\n" +
		"KCNQ1\tC\n"

	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	rec, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "KCNQ1", rec.Gene)
	assert.Equal(t, "C", rec.Ref)
	assert.Empty(t, rec.Alt)
	assert.Empty(t, rec.OMIMID)
	assert.Equal(t, 2, parser.LineNumber())
}

func TestParser_NoTrailingNewline(t *testing.T) {
	input := ColGene + "\t" + ColClinVarSig + "\r\nTTN\tPathogenic"

	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	rec, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "TTN", rec.Gene)
	assert.Equal(t, "Pathogenic", rec.ClinVarSignificance)

	rec, err = parser.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParser_UnknownColumnsIgnored(t *testing.T) {
	input := "tagsampler__numsample\t" + ColGene + "\n2\tLMNA\n"

	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	rec, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "LMNA", rec.Gene)
}

func TestParser_MissingGeneColumn(t *testing.T) {
	input := ColRSID + "\t" + ColClinVarSig + "\nrs1\tPathogenic\n"

	_, err := NewParserFromReader(strings.NewReader(input))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
	assert.Contains(t, perr.Error(), ColGene)
}

func TestParser_EmptyInput(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader("# only a comment\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header line found")
}

func TestParser_Gzip(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "sample.tsv"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(src)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	parser, err := NewParser(path)
	require.NoError(t, err)
	defer parser.Close()

	count := 0
	for {
		rec, err := parser.Next()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		count++
	}
	assert.Equal(t, 5, count)
}

func TestParserFromReader_Gzip(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "sample.tsv"))
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(src)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	parser, err := NewParserFromReader(&buf)
	require.NoError(t, err)
	defer parser.Close()

	rec, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "TTN", rec.Gene)
}

func TestParserFromReader_ShortInput(t *testing.T) {
	// A single byte is too short to sniff for gzip and has no gene column.
	_, err := NewParserFromReader(strings.NewReader("x"))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParser_FileNotFound(t *testing.T) {
	_, err := NewParser("/nonexistent/records.tsv")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
