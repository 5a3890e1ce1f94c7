package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleancli/pkg/contracts/domain"
)

func TestDedupeStage_KeepsFirstOccurrence(t *testing.T) {
	table := domain.NewTable(
		numericColumn("id", f(1), f(1), f(2), f(1)),
		textColumn("sex", "M", "M", "F", "M"),
	)
	state := newTestState(t, table, DefaultConfig())

	require.NoError(t, (&DedupeStage{}).Execute(context.Background(), state))

	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 2, state.Report.DuplicatesRemoved)
	assert.Equal(t, []string{"1", "M"}, table.Row(0))
	assert.Equal(t, []string{"2", "F"}, table.Row(1))
}

func TestDedupeStage_MissingCellsCompareEqual(t *testing.T) {
	table := domain.NewTable(
		numericColumn("id", f(1), f(1)),
		numericColumn("age", nil, nil),
	)
	state := newTestState(t, table, DefaultConfig())

	require.NoError(t, (&DedupeStage{}).Execute(context.Background(), state))

	assert.Equal(t, 1, table.RowCount())
	assert.Equal(t, 1, state.Report.DuplicatesRemoved)
}

func TestDedupeStage_MissingDistinctFromLiteral(t *testing.T) {
	// A null cell and a cell holding the literal key text must not collide
	table := domain.NewTable(
		textColumn("note", "<null>", ""),
	)
	state := newTestState(t, table, DefaultConfig())

	require.NoError(t, (&DedupeStage{}).Execute(context.Background(), state))

	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 0, state.Report.DuplicatesRemoved)
}

func TestDedupeStage_Idempotent(t *testing.T) {
	table := domain.NewTable(
		numericColumn("id", f(1), f(1), f(2)),
		textColumn("sex", "M", "M", "F"),
	)
	state := newTestState(t, table, DefaultConfig())

	require.NoError(t, (&DedupeStage{}).Execute(context.Background(), state))
	first := table.RowCount()

	state.Report.DuplicatesRemoved = 0
	require.NoError(t, (&DedupeStage{}).Execute(context.Background(), state))

	assert.Equal(t, first, table.RowCount())
	assert.Equal(t, 0, state.Report.DuplicatesRemoved)
}

func TestDedupeStage_SingleRow(t *testing.T) {
	table := domain.NewTable(textColumn("name", "ada"))
	state := newTestState(t, table, DefaultConfig())

	require.NoError(t, (&DedupeStage{}).Execute(context.Background(), state))

	assert.Equal(t, 1, table.RowCount())
	assert.Equal(t, 0, state.Report.DuplicatesRemoved)
	assert.Contains(t, state.Report.Steps, "Removed 0 duplicate rows")
}
