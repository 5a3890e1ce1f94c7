package cleaning

import (
	"context"
	"fmt"
	"log/slog"

	"cleancli/pkg/contracts/domain"
)

// MissingStage resolves missing cells with the run's selected strategy.
// Resolution is type-aware per column: the global selector may fall back
// on a column whose kind cannot honor it, and the strategy actually
// applied is recorded per column. The selector itself is validated
// before the pipeline mutates anything, so this stage only sees
// recognized strategies.
type MissingStage struct{}

func (s *MissingStage) ID() string   { return StageIDMissing }
func (s *MissingStage) Name() string { return StageNameMissing }

func (s *MissingStage) Execute(ctx context.Context, state *RunState) error {
	if state.Config.Strategy == domain.StrategyDelete {
		return s.deleteRows(ctx, state)
	}
	return s.fillCells(ctx, state)
}

// deleteRows drops every row containing at least one missing cell in
// any column.
func (s *MissingStage) deleteRows(ctx context.Context, state *RunState) error {
	table := state.Table
	rows := table.RowCount()
	keep := make([]int, 0, rows)

	for i := 0; i < rows; i++ {
		complete := true
		for _, col := range table.Columns {
			if col.Cells[i].Null {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	for i, col := range table.Columns {
		rep := state.ColumnReport(i)
		rep.MissingFound = col.MissingCount()
		if rep.MissingFound > 0 {
			// Every missing cell sinks its own row, so the per-column
			// drop count equals the column's missing count.
			rep.RowsDropped = rep.MissingFound
			rep.StrategyApplied = domain.AppliedDelete
		} else {
			rep.StrategyApplied = domain.AppliedNone
		}
	}

	dropped := rows - len(keep)
	if dropped > 0 {
		table.KeepRows(keep)
	}

	state.Logger.InfoContext(ctx, "rows with missing values deleted",
		slog.Int("rows_dropped", dropped),
		slog.Int("rows_after", len(keep)))
	state.Report.AddStep(fmt.Sprintf("Deleted %d rows containing missing values", dropped))
	return nil
}

// resolution is one row of the per-kind decision table: the fill value
// for a column's missing cells plus the strategy name recorded for it.
type resolution struct {
	fill    domain.Cell
	applied string
}

// resolve maps (column kind, run strategy) to a resolution. The fallback
// chain is explicit here rather than spread over conditionals: mean on a
// text column falls back to mode, and any column with zero present
// values takes the "MISSING" literal.
func resolve(col *domain.Column, strategy domain.Strategy) resolution {
	if col.Kind == domain.KindUnresolved {
		if strategy == domain.StrategyZero {
			return resolution{fill: domain.TextCell(domain.MissingLiteral), applied: domain.AppliedZero}
		}
		return resolution{fill: domain.TextCell(domain.MissingLiteral), applied: domain.AppliedMissingLiteral}
	}

	switch strategy {
	case domain.StrategyZero:
		if col.Kind == domain.KindNumeric {
			return resolution{fill: domain.NumericCell(0), applied: domain.AppliedZero}
		}
		return resolution{fill: domain.TextCell(domain.MissingLiteral), applied: domain.AppliedZero}

	case domain.StrategyMean:
		if col.Kind == domain.KindNumeric {
			mu := mean(col.PresentValues())
			return resolution{fill: domain.NumericCell(mu), applied: domain.AppliedMean}
		}
		return modeResolution(col)

	case domain.StrategyMode:
		if col.Kind == domain.KindNumeric {
			m, _ := modeFloat(col.PresentValues())
			return resolution{fill: domain.NumericCell(m), applied: domain.AppliedMode}
		}
		return modeResolution(col)
	}

	// Unreachable for validated configurations.
	return resolution{fill: domain.TextCell(domain.MissingLiteral), applied: domain.AppliedMissingLiteral}
}

// modeResolution fills a text column with its most frequent present
// value.
func modeResolution(col *domain.Column) resolution {
	present := make([]string, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if !cell.Null {
			present = append(present, cell.Raw)
		}
	}
	m, ok := modeString(present)
	if !ok {
		return resolution{fill: domain.TextCell(domain.MissingLiteral), applied: domain.AppliedMissingLiteral}
	}
	return resolution{fill: domain.TextCell(m), applied: domain.AppliedMode}
}

// fillCells replaces missing cells column by column according to the
// decision table.
func (s *MissingStage) fillCells(ctx context.Context, state *RunState) error {
	totalFilled := 0

	for i, col := range state.Table.Columns {
		rep := state.ColumnReport(i)
		missing := col.MissingCount()
		rep.MissingFound = missing
		if missing == 0 {
			rep.StrategyApplied = domain.AppliedNone
			continue
		}

		res := resolve(col, state.Config.Strategy)
		for j := range col.Cells {
			if col.Cells[j].Null {
				col.Cells[j] = res.fill
			}
		}
		rep.MissingFilled = missing
		rep.StrategyApplied = res.applied
		totalFilled += missing

		state.Logger.DebugContext(ctx, "missing cells filled",
			slog.String("column", col.Name),
			slog.Int("filled", missing),
			slog.String("applied", res.applied))
	}

	state.Logger.InfoContext(ctx, "missing values resolved",
		slog.String("strategy", string(state.Config.Strategy)),
		slog.Int("cells_filled", totalFilled))
	state.Report.AddStep(fmt.Sprintf("Filled %d missing cells using %q strategy", totalFilled, state.Config.Strategy))
	return nil
}
