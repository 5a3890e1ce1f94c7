package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "cleancli/internal/errors"
	"cleancli/pkg/contracts/domain"
)

// missingTokens are the cell spellings treated as absent values,
// compared case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// LoadFile reads a CSV or Excel file into a Table, dispatching on the
// file extension.
func LoadFile(path string) (*domain.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xls", ".xlsx":
		return ReadExcel(path)
	default:
		return nil, apperrors.UnsupportedFileError(ext)
	}
}

// ReadCSV parses CSV bytes into a Table. The first record is the header
// row; ragged data rows are padded with missing cells.
func ReadCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return FromRecords(records)
}

// FromRecords builds a Table from header-plus-rows string records and
// runs kind inference. Returns ErrEmptyInput when there is no header.
func FromRecords(records [][]string) (*domain.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, apperrors.ErrEmptyInput
	}

	header := records[0]
	rows := records[1:]
	columns := make([]*domain.Column, len(header))

	for j, name := range header {
		col := &domain.Column{
			OriginalName: strings.TrimSpace(sanitizeCell(name)),
			Name:         strings.TrimSpace(sanitizeCell(name)),
			Cells:        make([]domain.Cell, len(rows)),
		}
		for i, row := range rows {
			if j >= len(row) {
				col.Cells[i] = domain.MissingCell()
				continue
			}
			col.Cells[i] = parseCell(row[j])
		}
		inferKind(col)
		columns[j] = col
	}

	return domain.NewTable(columns...), nil
}

// parseCell converts one raw field into a Cell, normalizing the missing
// representations to a single canonical form.
func parseCell(raw string) domain.Cell {
	trimmed := strings.TrimSpace(sanitizeCell(raw))
	if _, missing := missingTokens[strings.ToLower(trimmed)]; missing {
		return domain.MissingCell()
	}
	return domain.TextCell(trimmed)
}

// sanitizeCell strips the control characters the dedupe row keys reserve.
func sanitizeCell(s string) string {
	if !strings.ContainsAny(s, "\x1f\x00") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\x1f' || r == '\x00' {
			return -1
		}
		return r
	}, s)
}

// inferKind tags the column numeric when every present cell parses as a
// float, unresolved when no cell is present, and text otherwise. Numeric
// cells get a canonical textual form so equal values compare equal
// during deduplication.
func inferKind(col *domain.Column) {
	present := 0
	numeric := true
	nums := make([]float64, len(col.Cells))

	for i, cell := range col.Cells {
		if cell.Null {
			continue
		}
		present++
		if !numeric {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell.Raw, ",", ""), 64)
		if err != nil {
			numeric = false
			continue
		}
		nums[i] = v
	}

	switch {
	case present == 0:
		col.Kind = domain.KindUnresolved
		col.Storage = domain.StorageString
	case numeric:
		col.Kind = domain.KindNumeric
		col.Storage = domain.StorageFloat64
		for i := range col.Cells {
			if !col.Cells[i].Null {
				col.Cells[i] = domain.NumericCell(nums[i])
			}
		}
	default:
		col.Kind = domain.KindText
		col.Storage = domain.StorageString
	}
}
