package cleaning

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleancli/pkg/contracts/domain"
)

func runOutliers(t *testing.T, table *domain.Table, threshold float64) *RunState {
	t.Helper()
	cfg := DefaultConfig()
	cfg.OutlierThreshold = threshold
	state := newTestState(t, table, cfg)
	require.NoError(t, (&OutlierStage{}).Execute(context.Background(), state))
	return state
}

func TestOutlierStage_CapsHighValue(t *testing.T) {
	// Nine values near 10 plus one extreme spike
	table := domain.NewTable(numericColumn("v",
		f(10), f(11), f(9), f(10), f(12), f(8), f(10), f(11), f(9), f(1000)))
	rows := table.RowCount()

	// Capping is bounded by the statistics observed before any value moves
	before := table.Columns[0].PresentValues()
	mu := mean(before)
	sigma := sampleStdDev(before, mu)

	state := runOutliers(t, table, 2.0)

	col := table.Columns[0]
	assert.Equal(t, rows, table.RowCount())
	for _, v := range col.PresentValues() {
		assert.LessOrEqual(t, math.Abs(v-mu)/sigma, 2.0+1e-9)
	}

	rep := state.Report.ColumnReport("v")
	assert.Equal(t, 1, rep.OutliersCapped)
	assert.Equal(t, 2.0, rep.OutlierThreshold)
	assert.Less(t, col.Cells[9].Num, 1000.0)
}

func TestOutlierStage_CapsToNearestBoundary(t *testing.T) {
	table := domain.NewTable(numericColumn("v",
		f(10), f(11), f(9), f(10), f(12), f(8), f(10), f(11), f(9), f(1000)))

	vals := table.Columns[0].PresentValues()
	mu := mean(vals)
	sigma := sampleStdDev(vals, mu)
	upper := mu + 2.0*sigma

	runOutliers(t, table, 2.0)

	assert.InDelta(t, upper, table.Columns[0].Cells[9].Num, 1e-9)
}

func TestOutlierStage_ConstantColumnUntouched(t *testing.T) {
	table := domain.NewTable(numericColumn("v", f(4), f(4), f(4)))
	state := runOutliers(t, table, 3.0)

	assert.Equal(t, 0, state.Report.ColumnReport("v").OutliersCapped)
	for _, cell := range table.Columns[0].Cells {
		assert.Equal(t, 4.0, cell.Num)
	}
}

func TestOutlierStage_TextColumnUntouched(t *testing.T) {
	table := domain.NewTable(textColumn("name", "a", "b", "c"))
	state := runOutliers(t, table, 3.0)

	assert.Equal(t, 0, state.Report.ColumnReport("name").OutliersCapped)
	assert.Equal(t, "a", table.Columns[0].Cells[0].Raw)
}

func TestOutlierStage_NoCapWithinThreshold(t *testing.T) {
	// With threshold 3 all three values are within one standard deviation
	table := domain.NewTable(numericColumn("age", f(34), f(117), f(200)))
	state := runOutliers(t, table, 3.0)

	assert.Equal(t, 0, state.Report.ColumnReport("age").OutliersCapped)
	assert.Equal(t, 200.0, table.Columns[0].Cells[2].Num)
}
