package domain

// Strategy selects how missing values are resolved for a whole run.
type Strategy string

const (
	StrategyDelete Strategy = "delete"
	StrategyZero   Strategy = "zero"
	StrategyMean   Strategy = "mean"
	StrategyMode   Strategy = "mode"
)

// Valid reports whether the strategy is one of the recognized selectors.
func (s Strategy) Valid() bool {
	switch s {
	case StrategyDelete, StrategyZero, StrategyMean, StrategyMode:
		return true
	}
	return false
}

// Applied strategies recorded per column. These may differ from the run's
// global selector when a type-aware fallback triggers (mean on a text
// column falls back to mode, mode on an all-missing column falls back to
// the "MISSING" literal).
const (
	AppliedDelete         = "delete"
	AppliedZero           = "zero"
	AppliedMean           = "mean"
	AppliedMode           = "mode"
	AppliedMissingLiteral = "missing_literal"
	AppliedNone           = "none" // column had no missing cells
)

// MissingLiteral is the fill value for text columns under the zero
// strategy and for columns with no present values at all.
const MissingLiteral = "MISSING"

// ColumnReport carries the per-column metrics of one cleaning run.
type ColumnReport struct {
	OriginalName     string      `json:"original_name"`
	Name             string      `json:"name"`
	Kind             ColumnKind  `json:"kind"`
	MissingFound     int         `json:"missing_found"`
	MissingFilled    int         `json:"missing_filled"`
	RowsDropped      int         `json:"rows_dropped"`
	StrategyApplied  string      `json:"strategy_applied"`
	OutliersCapped   int         `json:"outliers_capped"`
	OutlierThreshold float64     `json:"outlier_threshold"`
	TypeBefore       StorageType `json:"type_before"`
	TypeAfter        StorageType `json:"type_after"`
}

// CleaningReport aggregates the metrics emitted by every pipeline stage.
// It is derived state only: stages thread their own counters through, the
// report never recomputes statistics from the table.
type CleaningReport struct {
	RunID             string         `json:"run_id"`
	Strategy          Strategy       `json:"strategy"`
	OutlierThreshold  float64        `json:"outlier_threshold"`
	RowsBefore        int            `json:"rows_before"`
	RowsAfter         int            `json:"rows_after"`
	DuplicatesRemoved int            `json:"duplicates_removed"`
	Columns           []ColumnReport `json:"columns"`
	Steps             []string       `json:"steps_taken"`
}

// ColumnReport returns the entry for the given normalized or original
// column name, or nil when absent.
func (r *CleaningReport) ColumnReport(name string) *ColumnReport {
	for i := range r.Columns {
		if r.Columns[i].Name == name || r.Columns[i].OriginalName == name {
			return &r.Columns[i]
		}
	}
	return nil
}

// AddStep appends a human-readable description of a completed step.
func (r *CleaningReport) AddStep(step string) {
	r.Steps = append(r.Steps, step)
}

// TotalMissingFilled sums filled cells across all columns.
func (r *CleaningReport) TotalMissingFilled() int {
	n := 0
	for i := range r.Columns {
		n += r.Columns[i].MissingFilled
	}
	return n
}

// TotalOutliersCapped sums capped values across all columns.
func (r *CleaningReport) TotalOutliersCapped() int {
	n := 0
	for i := range r.Columns {
		n += r.Columns[i].OutliersCapped
	}
	return n
}
