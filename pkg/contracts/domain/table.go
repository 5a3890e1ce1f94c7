package domain

import (
	"math"
	"strconv"
)

// ColumnKind classifies the values of a column. It is inferred once at the
// ingestion boundary and does not change across pipeline stages.
type ColumnKind string

const (
	KindNumeric    ColumnKind = "numeric"
	KindText       ColumnKind = "text"
	KindUnresolved ColumnKind = "unresolved" // every cell missing, kind undecidable
)

// StorageType identifies the physical representation chosen for a column.
type StorageType string

const (
	StorageInt8     StorageType = "int8"
	StorageInt16    StorageType = "int16"
	StorageInt32    StorageType = "int32"
	StorageInt64    StorageType = "int64"
	StorageUint8    StorageType = "uint8"
	StorageUint16   StorageType = "uint16"
	StorageUint32   StorageType = "uint32"
	StorageUint64   StorageType = "uint64"
	StorageFloat32  StorageType = "float32"
	StorageFloat64  StorageType = "float64"
	StorageString   StorageType = "string"
	StorageCategory StorageType = "category"
)

// Cell holds one table value. Num is meaningful only for cells of numeric
// columns with Null unset; Raw carries the textual form for every kind.
type Cell struct {
	Raw  string  `json:"raw"`
	Num  float64 `json:"num,omitempty"`
	Null bool    `json:"null,omitempty"`
}

// NumericCell builds a numeric cell with a canonical textual form.
func NumericCell(v float64) Cell {
	return Cell{Raw: FormatNumeric(v), Num: v}
}

// TextCell builds a present text cell.
func TextCell(s string) Cell {
	return Cell{Raw: s}
}

// MissingCell is the canonical representation of an absent value.
func MissingCell() Cell {
	return Cell{Null: true}
}

// FormatNumeric renders a numeric value the way exported CSV cells are
// written: integral values without a decimal point, everything else with
// the shortest round-tripping representation.
func FormatNumeric(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Dictionary is the level table of a dictionary-encoded text column.
// Codes holds one entry per row indexing into Levels.
type Dictionary struct {
	Levels []string `json:"levels"`
	Codes  []int32  `json:"codes"`
}

// Decode returns the textual value of row i.
func (d *Dictionary) Decode(i int) string {
	return d.Levels[d.Codes[i]]
}

// Column is a named, kind-tagged sequence of cells.
type Column struct {
	OriginalName string      `json:"original_name"`
	Name         string      `json:"name"`
	Kind         ColumnKind  `json:"kind"`
	Storage      StorageType `json:"storage"`
	Cells        []Cell      `json:"-"`
	Dict         *Dictionary `json:"-"` // non-nil once dictionary-encoded
}

// MissingCount returns the number of null cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Null {
			n++
		}
	}
	return n
}

// PresentValues returns the numeric values of all non-null cells.
// Only meaningful for numeric columns.
func (c *Column) PresentValues() []float64 {
	vals := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Null {
			vals = append(vals, cell.Num)
		}
	}
	return vals
}

// Table is an ordered sequence of named columns of equal row count.
// A Table is owned by exactly one cleaning run and must not be shared
// across concurrent runs.
type Table struct {
	Columns []*Column `json:"columns"`
}

// NewTable builds a table from columns. Callers are responsible for
// keeping all columns the same length.
func NewTable(columns ...*Column) *Table {
	return &Table{Columns: columns}
}

// RowCount returns the number of rows, zero for a table with no columns.
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Empty reports whether the table has no columns or no rows.
func (t *Table) Empty() bool {
	return t.ColumnCount() == 0 || t.RowCount() == 0
}

// Column returns the column with the given (normalized or original) name,
// or nil when absent.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name || c.OriginalName == name {
			return c
		}
	}
	return nil
}

// Headers returns the current column names in order.
func (t *Table) Headers() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the textual form of row i across all columns. Null cells
// render as the empty string.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		if c.Cells[i].Null {
			row[j] = ""
			continue
		}
		row[j] = c.Cells[i].Raw
	}
	return row
}

// KeepRows retains only the rows whose indices appear in keep, in the
// given order, across every column.
func (t *Table) KeepRows(keep []int) {
	for _, c := range t.Columns {
		cells := make([]Cell, len(keep))
		for i, idx := range keep {
			cells[i] = c.Cells[idx]
		}
		c.Cells = cells
	}
}
