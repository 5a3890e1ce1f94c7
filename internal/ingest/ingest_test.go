package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cleancli/internal/errors"
	"cleancli/pkg/contracts/domain"
)

func TestReadCSV(t *testing.T) {
	input := "Patient ID,Age ,Sex\n1,34,M\n1,34,M\n2,,F\n3,200,F\n"

	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Equal(t, 3, table.ColumnCount())
	assert.Equal(t, 4, table.RowCount())
	assert.Equal(t, "Patient ID", table.Columns[0].OriginalName)
	assert.Equal(t, "Age", table.Columns[1].OriginalName)

	age := table.Columns[1]
	assert.Equal(t, domain.KindNumeric, age.Kind)
	assert.Equal(t, 1, age.MissingCount())
	assert.Equal(t, 34.0, age.Cells[0].Num)
	assert.Equal(t, 200.0, age.Cells[3].Num)

	assert.Equal(t, domain.KindText, table.Columns[2].Kind)
}

func TestReadCSV_RaggedRowsPadded(t *testing.T) {
	input := "a,b,c\n1,2,3\n4\n"

	table, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, table.RowCount())
	assert.True(t, table.Columns[1].Cells[1].Null)
	assert.True(t, table.Columns[2].Cells[1].Null)
	assert.Equal(t, 4.0, table.Columns[0].Cells[1].Num)
}

func TestParseCell_MissingTokens(t *testing.T) {
	tests := []struct {
		raw     string
		missing bool
	}{
		{raw: "", missing: true},
		{raw: "   ", missing: true},
		{raw: "NA", missing: true},
		{raw: "n/a", missing: true},
		{raw: "NaN", missing: true},
		{raw: "NULL", missing: true},
		{raw: "None", missing: true},
		{raw: " null ", missing: true},
		{raw: "0", missing: false},
		{raw: "nothing", missing: false},
		{raw: "n.a.", missing: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cell := parseCell(tt.raw)
			assert.Equal(t, tt.missing, cell.Null)
		})
	}
}

func TestSanitizeCell(t *testing.T) {
	assert.Equal(t, "abc", sanitizeCell("abc"))
	assert.Equal(t, "ab", sanitizeCell("a\x1fb"))
	assert.Equal(t, "ab", sanitizeCell("a\x00b"))
}

func TestFromRecords_KindInference(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected domain.ColumnKind
	}{
		{name: "integers", rows: []string{"1", "2", "3"}, expected: domain.KindNumeric},
		{name: "floats", rows: []string{"1.5", "-2.25"}, expected: domain.KindNumeric},
		{name: "thousands separators", rows: []string{"1,234", "5,678,901"}, expected: domain.KindNumeric},
		{name: "scientific notation", rows: []string{"1e3", "2.5e-2"}, expected: domain.KindNumeric},
		{name: "numeric with gaps", rows: []string{"1", "", "3"}, expected: domain.KindNumeric},
		{name: "mixed", rows: []string{"1", "abc"}, expected: domain.KindText},
		{name: "text", rows: []string{"M", "F"}, expected: domain.KindText},
		{name: "all missing", rows: []string{"", "na", "null"}, expected: domain.KindUnresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := [][]string{{"v"}}
			for _, r := range tt.rows {
				records = append(records, []string{r})
			}

			table, err := FromRecords(records)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, table.Columns[0].Kind)
		})
	}
}

func TestFromRecords_NumericCanonicalForm(t *testing.T) {
	table, err := FromRecords([][]string{{"v"}, {"1,234"}, {"7.50"}})
	require.NoError(t, err)

	col := table.Columns[0]
	require.Equal(t, domain.KindNumeric, col.Kind)
	assert.Equal(t, "1234", col.Cells[0].Raw)
	assert.Equal(t, "7.5", col.Cells[1].Raw)
}

func TestFromRecords_EmptyInput(t *testing.T) {
	_, err := FromRecords(nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)

	_, err = FromRecords([][]string{{}})
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
}

func TestFromRecords_HeaderOnly(t *testing.T) {
	table, err := FromRecords([][]string{{"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, 2, table.ColumnCount())
	assert.Equal(t, 0, table.RowCount())
	assert.True(t, table.Empty())
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile("data.parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFile)
}

func TestLoadFile_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,ada\n2,grace\n"), 0o644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, domain.KindNumeric, table.Columns[0].Kind)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
