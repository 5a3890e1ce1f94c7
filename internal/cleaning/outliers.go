package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"cleancli/pkg/contracts/domain"
)

// OutlierStage clamps statistical outliers in numeric columns. For each
// value v in a column with mean mu and sample standard deviation sigma>0,
// values with |v-mu|/sigma beyond the configured threshold are replaced
// by the nearest boundary mu±threshold·sigma. Row count never changes.
// Constant and non-numeric columns are left untouched. This stage runs
// after missing value resolution so mu and sigma are computed over a
// complete column.
type OutlierStage struct{}

func (s *OutlierStage) ID() string   { return StageIDOutliers }
func (s *OutlierStage) Name() string { return StageNameOutliers }

func (s *OutlierStage) Execute(ctx context.Context, state *RunState) error {
	threshold := state.Config.OutlierThreshold
	totalCapped := 0

	for i, col := range state.Table.Columns {
		rep := state.ColumnReport(i)
		rep.OutlierThreshold = threshold
		if col.Kind != domain.KindNumeric {
			continue
		}

		vals := col.PresentValues()
		mu := mean(vals)
		sigma := sampleStdDev(vals, mu)
		if sigma == 0 {
			continue
		}

		upper := mu + threshold*sigma
		lower := mu - threshold*sigma
		capped := 0

		for j := range col.Cells {
			if col.Cells[j].Null {
				continue
			}
			v := col.Cells[j].Num
			z := math.Abs(v-mu) / sigma
			if z <= threshold {
				continue
			}
			if v > upper {
				col.Cells[j] = domain.NumericCell(upper)
			} else {
				col.Cells[j] = domain.NumericCell(lower)
			}
			capped++
		}

		rep.OutliersCapped = capped
		totalCapped += capped
		if capped > 0 {
			state.Logger.DebugContext(ctx, "outliers capped",
				slog.String("column", col.Name),
				slog.Int("capped", capped),
				slog.Float64("mean", mu),
				slog.Float64("stddev", sigma))
		}
	}

	state.Logger.InfoContext(ctx, "outlier capping complete",
		slog.Float64("threshold", threshold),
		slog.Int("values_capped", totalCapped))
	state.Report.AddStep(fmt.Sprintf("Capped %d outliers beyond %.1f standard deviations", totalCapped, threshold))
	return nil
}
