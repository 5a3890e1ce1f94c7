package cleaning

import (
	"context"
	"log/slog"

	"cleancli/pkg/contracts/domain"
)

// Stage is a single step of the cleaning pipeline. Stages mutate the
// run state's table in place and record their metrics on the report;
// they never recompute another stage's numbers.
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Execute runs the stage against the run state
	Execute(ctx context.Context, state *RunState) error
}

// Stage identifiers
const (
	StageIDNormalize = "normalize"
	StageIDDedupe    = "dedupe"
	StageIDMissing   = "missing"
	StageIDOutliers  = "outliers"
	StageIDTypeOpt   = "typeopt"
)

// Stage names
const (
	StageNameNormalize = "Column Name Normalization"
	StageNameDedupe    = "Duplicate Elimination"
	StageNameMissing   = "Missing Value Resolution"
	StageNameOutliers  = "Outlier Capping"
	StageNameTypeOpt   = "Type Optimization"
)

// RunState carries one run's table, configuration and report through
// the stages. It is owned by a single run and never shared.
type RunState struct {
	Table  *domain.Table
	Config Config
	Report *domain.CleaningReport
	Logger *slog.Logger
}

// ColumnReport returns the report entry for the i-th table column.
// Report entries are created in table order before the first stage runs,
// so the index is stable across stages.
func (s *RunState) ColumnReport(i int) *domain.ColumnReport {
	return &s.Report.Columns[i]
}
