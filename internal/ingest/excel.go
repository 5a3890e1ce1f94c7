package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "cleancli/internal/errors"
	"cleancli/pkg/contracts/domain"
)

// ReadExcel reads the first sheet containing data from an Excel workbook
// into a Table.
func ReadExcel(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	rows, err := sheetRows(f)
	if err != nil {
		return nil, err
	}
	return FromRecords(rows)
}

// sheetRows returns the rows of the active sheet, falling back to the
// first sheet with any content.
func sheetRows(f *excelize.File) ([][]string, error) {
	active := f.GetSheetName(f.GetActiveSheetIndex())
	if rows, err := f.GetRows(active); err == nil && hasContent(rows) {
		return rows, nil
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if hasContent(rows) {
			return rows, nil
		}
	}
	return nil, apperrors.ErrEmptyInput
}

func hasContent(rows [][]string) bool {
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return true
			}
		}
	}
	return false
}
