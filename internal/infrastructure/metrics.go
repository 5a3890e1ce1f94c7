package infrastructure

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"cleancli/pkg/contracts/domain"
)

// CleaningMetrics holds the instruments recording cleaning run outcomes.
type CleaningMetrics struct {
	runsTotal         metric.Int64Counter
	runFailures       metric.Int64Counter
	rowsProcessed     metric.Int64Counter
	duplicatesRemoved metric.Int64Counter
	missingFilled     metric.Int64Counter
	outliersCapped    metric.Int64Counter
}

// NewCleaningMetrics registers the cleaning instruments on the meter.
func NewCleaningMetrics(meter metric.Meter) (*CleaningMetrics, error) {
	m := &CleaningMetrics{}
	var err error

	if m.runsTotal, err = meter.Int64Counter("cleaning_runs_total",
		metric.WithDescription("Completed cleaning runs")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.runFailures, err = meter.Int64Counter("cleaning_run_failures_total",
		metric.WithDescription("Cleaning runs rejected or failed")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.rowsProcessed, err = meter.Int64Counter("cleaning_rows_processed_total",
		metric.WithDescription("Input rows processed across runs")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.duplicatesRemoved, err = meter.Int64Counter("cleaning_duplicates_removed_total",
		metric.WithDescription("Duplicate rows removed across runs")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.missingFilled, err = meter.Int64Counter("cleaning_missing_filled_total",
		metric.WithDescription("Missing cells filled across runs")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	if m.outliersCapped, err = meter.Int64Counter("cleaning_outliers_capped_total",
		metric.WithDescription("Outlier values capped across runs")); err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	return m, nil
}

// RecordRun records the outcome of one completed cleaning run.
func (m *CleaningMetrics) RecordRun(ctx context.Context, report *domain.CleaningReport) {
	if m == nil || report == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("strategy", string(report.Strategy)))
	m.runsTotal.Add(ctx, 1, attrs)
	m.rowsProcessed.Add(ctx, int64(report.RowsBefore), attrs)
	m.duplicatesRemoved.Add(ctx, int64(report.DuplicatesRemoved), attrs)
	m.missingFilled.Add(ctx, int64(report.TotalMissingFilled()), attrs)
	m.outliersCapped.Add(ctx, int64(report.TotalOutliersCapped()), attrs)
}

// RecordFailure records a rejected or failed run.
func (m *CleaningMetrics) RecordFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.runFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
