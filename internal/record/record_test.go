package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMap(t *testing.T) {
	rec := FromMap(map[string]string{
		ColGene:             "TTN",
		ColClinVarSig:       "Pathogenic",
		ColCardioBoostArrhy: "0.91",
		"unknown__field":    "ignored",
	})

	assert.Equal(t, "TTN", rec.Gene)
	assert.Equal(t, "Pathogenic", rec.ClinVarSignificance)
	assert.Equal(t, "0.91", rec.CardioBoostArrhythmia)
	assert.Empty(t, rec.SIFTPrediction, "missing keys stay empty")
	assert.Empty(t, rec.Get("unknown__field"))
}

func TestRecord_GetSetAllColumns(t *testing.T) {
	var rec Record
	for _, col := range Columns {
		rec.Set(col, "v_"+col)
	}
	for _, col := range Columns {
		assert.Equal(t, "v_"+col, rec.Get(col), col)
	}
}
