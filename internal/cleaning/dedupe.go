package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DedupeStage removes exact-duplicate rows, keeping the first occurrence
// of each distinct row and preserving relative order. Missing cells share
// one canonical key form, so all-missing rows count as duplicates of each
// other.
type DedupeStage struct{}

func (s *DedupeStage) ID() string   { return StageIDDedupe }
func (s *DedupeStage) Name() string { return StageNameDedupe }

// missingKey is a key form no real cell value can collide with: unit
// separator is rejected by the ingestion boundary.
const missingKey = "\x1f<null>"

func (s *DedupeStage) Execute(ctx context.Context, state *RunState) error {
	table := state.Table
	rows := table.RowCount()
	if rows <= 1 {
		state.Report.AddStep("Removed 0 duplicate rows")
		return nil
	}

	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	var b strings.Builder

	for i := 0; i < rows; i++ {
		b.Reset()
		for _, col := range table.Columns {
			cell := col.Cells[i]
			if cell.Null {
				b.WriteString(missingKey)
			} else {
				b.WriteString(cell.Raw)
			}
			b.WriteByte('\x1f')
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	removed := rows - len(keep)
	if removed > 0 {
		table.KeepRows(keep)
	}
	state.Report.DuplicatesRemoved = removed

	state.Logger.InfoContext(ctx, "duplicate rows removed",
		slog.Int("rows_before", rows),
		slog.Int("rows_after", len(keep)),
		slog.Int("removed", removed))
	state.Report.AddStep(fmt.Sprintf("Removed %d duplicate rows", removed))
	return nil
}
