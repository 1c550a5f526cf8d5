package genes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader("TTN\nMYH7\r\n  LMNA  \n\n\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("TTN"))
	assert.True(t, s.Contains("MYH7"))
	assert.True(t, s.Contains("LMNA"))
	assert.False(t, s.Contains(""), "blank lines should be skipped")
	assert.False(t, s.Contains("BRCA1"))
}

func TestSymbolsSorted(t *testing.T) {
	s := New("TTN", "ACTC1", "MYH7", "TTN")
	assert.Equal(t, []string{"ACTC1", "MYH7", "TTN"}, s.Symbols())
}

func TestZeroSet(t *testing.T) {
	var s Set
	assert.False(t, s.Contains("TTN"))
	assert.Zero(t, s.Len())
}

func TestDefault(t *testing.T) {
	s := Default()
	require.NotZero(t, s.Len())

	for _, gene := range []string{"TTN", "MYH7", "MYBPC3", "SCN5A", "KCNQ1", "KCNH2", "LMNA"} {
		assert.True(t, s.Contains(gene), "bundled list should contain %s", gene)
	}
	assert.False(t, s.Contains(""))
	assert.False(t, s.Contains("BRCA1"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genes.txt")
	require.NoError(t, os.WriteFile(path, []byte("KCNQ1\nKCNH2\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"KCNH2", "KCNQ1"}, s.Symbols())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/genes.txt")
	assert.Error(t, err)
}
