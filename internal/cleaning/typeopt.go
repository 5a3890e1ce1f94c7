package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"cleancli/pkg/contracts/domain"
)

// TypeOptimizeStage narrows every column to the smallest storage type
// that represents each observed value without precision loss: integral
// numeric columns take the smallest integer width covering their range
// (unsigned when no value is negative), fractional columns take float32
// when every value round-trips through it, and text columns whose
// distinct-value ratio is below the configured categorical ratio are
// dictionary encoded. Values themselves never change; decoding the
// optimized representation reproduces every cell exactly.
type TypeOptimizeStage struct{}

func (s *TypeOptimizeStage) ID() string   { return StageIDTypeOpt }
func (s *TypeOptimizeStage) Name() string { return StageNameTypeOpt }

func (s *TypeOptimizeStage) Execute(ctx context.Context, state *RunState) error {
	narrowed := 0

	for i, col := range state.Table.Columns {
		rep := state.ColumnReport(i)
		before := baseStorage(col.Kind)
		col.Storage = before
		after := before

		switch col.Kind {
		case domain.KindNumeric:
			after = narrowNumeric(col)
		case domain.KindText:
			after = encodeCategorical(col, state.Config.CategoricalRatio)
		}

		col.Storage = after
		rep.TypeBefore = before
		rep.TypeAfter = after
		if after != before {
			narrowed++
			state.Logger.DebugContext(ctx, "column storage narrowed",
				slog.String("column", col.Name),
				slog.String("before", string(before)),
				slog.String("after", string(after)))
		}
	}

	state.Logger.InfoContext(ctx, "storage types optimized",
		slog.Int("columns_narrowed", narrowed))
	state.Report.AddStep(fmt.Sprintf("Optimized storage types for %d of %d columns", narrowed, state.Table.ColumnCount()))
	return nil
}

// baseStorage is the representation every column starts from.
func baseStorage(kind domain.ColumnKind) domain.StorageType {
	if kind == domain.KindNumeric {
		return domain.StorageFloat64
	}
	return domain.StorageString
}

// narrowNumeric picks the narrowest lossless numeric storage type for
// the column's present values.
func narrowNumeric(col *domain.Column) domain.StorageType {
	integral := true
	fitsFloat32 := true
	minV := math.Inf(1)
	maxV := math.Inf(-1)
	present := 0

	for _, cell := range col.Cells {
		if cell.Null {
			continue
		}
		present++
		v := cell.Num
		if v != math.Trunc(v) {
			integral = false
		}
		if float64(float32(v)) != v {
			fitsFloat32 = false
		}
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if present == 0 {
		return domain.StorageFloat64
	}

	if integral {
		return narrowestIntType(minV, maxV)
	}
	if fitsFloat32 {
		return domain.StorageFloat32
	}
	return domain.StorageFloat64
}

// narrowestIntType returns the smallest integer width covering the
// closed range [minV, maxV], preferring unsigned widths for non-negative
// ranges. Ranges beyond int64/uint64 stay float64.
func narrowestIntType(minV, maxV float64) domain.StorageType {
	if minV >= 0 {
		switch {
		case maxV <= math.MaxUint8:
			return domain.StorageUint8
		case maxV <= math.MaxUint16:
			return domain.StorageUint16
		case maxV <= math.MaxUint32:
			return domain.StorageUint32
		case maxV <= math.MaxUint64:
			return domain.StorageUint64
		}
		return domain.StorageFloat64
	}
	switch {
	case minV >= math.MinInt8 && maxV <= math.MaxInt8:
		return domain.StorageInt8
	case minV >= math.MinInt16 && maxV <= math.MaxInt16:
		return domain.StorageInt16
	case minV >= math.MinInt32 && maxV <= math.MaxInt32:
		return domain.StorageInt32
	case minV >= math.MinInt64 && maxV <= math.MaxInt64:
		return domain.StorageInt64
	}
	return domain.StorageFloat64
}

// encodeCategorical dictionary-encodes the column when its cardinality
// is low enough to pay off, attaching the level table to the column.
func encodeCategorical(col *domain.Column, ratio float64) domain.StorageType {
	rows := len(col.Cells)
	if rows == 0 {
		return domain.StorageString
	}

	levels := make([]string, 0)
	index := make(map[string]int32, rows)
	codes := make([]int32, rows)

	for i, cell := range col.Cells {
		// Post-resolution text columns have no nulls left; keep the raw
		// form as its own level if one slips through on a no-op run.
		v := cell.Raw
		code, ok := index[v]
		if !ok {
			code = int32(len(levels))
			index[v] = code
			levels = append(levels, v)
		}
		codes[i] = code
	}

	if float64(len(levels))/float64(rows) >= ratio {
		return domain.StorageString
	}

	col.Dict = &domain.Dictionary{Levels: levels, Codes: codes}
	return domain.StorageCategory
}
