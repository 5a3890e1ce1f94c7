package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cleancli/pkg/contracts/domain"
)

// Pipeline runs the cleaning stages in their fixed order. One Pipeline
// may serve many runs concurrently: all per-run state lives in the
// RunState, the pipeline itself holds no mutable data.
type Pipeline struct {
	logger *slog.Logger
	stages []Stage
}

// NewPipeline builds the standard five-stage pipeline.
func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger: logger,
		stages: []Stage{
			&NormalizeStage{},
			&DedupeStage{},
			&MissingStage{},
			&OutlierStage{},
			&TypeOptimizeStage{},
		},
	}
}

// Run cleans the table in place and returns the cleaning report. The
// configuration is validated before any mutation: an unrecognized
// strategy or threshold rejects the run with the table untouched. An
// empty table is a no-op producing a zeroed report.
func (p *Pipeline) Run(ctx context.Context, table *domain.Table, cfg Config) (*domain.CleaningReport, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := newReport(table, cfg)
	logger := p.logger.With(slog.String("run_id", report.RunID))

	if table.Empty() {
		report.AddStep("Input table is empty, nothing to clean")
		logger.WarnContext(ctx, "empty input table, skipping all stages",
			slog.Int("columns", table.ColumnCount()),
			slog.Int("rows", table.RowCount()))
		return report, nil
	}

	state := &RunState{
		Table:  table,
		Config: cfg,
		Report: report,
		Logger: logger,
	}

	start := time.Now()
	logger.InfoContext(ctx, "cleaning run started",
		slog.Int("rows", report.RowsBefore),
		slog.Int("columns", table.ColumnCount()),
		slog.String("strategy", string(cfg.Strategy)),
		slog.Float64("outlier_threshold", cfg.OutlierThreshold))

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("cleaning run cancelled before stage %s: %w", stage.ID(), err)
		}
		stageStart := time.Now()
		if err := stage.Execute(ctx, state); err != nil {
			logger.ErrorContext(ctx, "stage failed",
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("stage %s (%s): %w", stage.ID(), stage.Name(), err)
		}
		logger.DebugContext(ctx, "stage completed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", time.Since(stageStart)))
	}

	report.RowsAfter = table.RowCount()
	logger.InfoContext(ctx, "cleaning run completed",
		slog.Int("rows_before", report.RowsBefore),
		slog.Int("rows_after", report.RowsAfter),
		slog.Int("duplicates_removed", report.DuplicatesRemoved),
		slog.Int("missing_filled", report.TotalMissingFilled()),
		slog.Int("outliers_capped", report.TotalOutliersCapped()),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}

// newReport seeds the report with one entry per column in table order.
// Stages fill their own metrics in; nothing here is recomputed later.
func newReport(table *domain.Table, cfg Config) *domain.CleaningReport {
	report := &domain.CleaningReport{
		RunID:            uuid.New().String(),
		Strategy:         cfg.Strategy,
		OutlierThreshold: cfg.OutlierThreshold,
		RowsBefore:       table.RowCount(),
		RowsAfter:        table.RowCount(),
		Columns:          make([]domain.ColumnReport, table.ColumnCount()),
	}
	for i, col := range table.Columns {
		report.Columns[i] = domain.ColumnReport{
			OriginalName:     col.OriginalName,
			Name:             col.Name,
			Kind:             col.Kind,
			StrategyApplied:  domain.AppliedNone,
			OutlierThreshold: cfg.OutlierThreshold,
			TypeBefore:       baseStorage(col.Kind),
			TypeAfter:        baseStorage(col.Kind),
		}
	}
	return report
}
