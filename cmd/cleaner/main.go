package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"cleancli/internal/cleaning"
	"cleancli/internal/config"
	"cleancli/internal/exporter"
	"cleancli/internal/infrastructure"
	"cleancli/internal/ingest"
	"cleancli/pkg/contracts/domain"
)

func main() {
	inPath := flag.String("in", "", "input CSV/Excel file or directory (defaults to the configured uploads directory)")
	outDir := flag.String("out", "", "output directory for cleaned files (defaults to the configured cleaned directory)")
	strategy := flag.String("strategy", "", "missing value strategy: delete, zero, mean or mode")
	threshold := flag.Float64("threshold", 0, "z-score threshold for outlier capping (default 3.0)")
	workers := flag.Int("workers", 4, "number of files cleaned concurrently")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	if logCfg.Output != "console" {
		logCfg.FilePath = cfg.Paths.GetLogPath("cleaner.log")
	}
	logger, err := infrastructure.InitializeLogger(logCfg)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *inPath == "" {
		*inPath = cfg.Paths.UploadsDir
	}
	if *outDir == "" {
		*outDir = cfg.Paths.CleanedDir
	}
	if *strategy == "" {
		*strategy = cfg.Cleaning.Strategy
	}
	if *threshold == 0 {
		*threshold = cfg.Cleaning.OutlierThreshold
	}

	runCfg := cleaning.Config{
		Strategy:         domain.Strategy(*strategy),
		OutlierThreshold: *threshold,
		CategoricalRatio: cfg.Cleaning.CategoricalRatio,
	}
	// Reject bad configuration before touching any file
	if err := runCfg.Validate(); err != nil {
		logger.Error("Invalid cleaning configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	files, err := discoverFiles(*inPath)
	if err != nil {
		logger.Error("Failed to discover input files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Error("No CSV or Excel files found", slog.String("path", *inPath))
		os.Exit(1)
	}

	logger.Info("Starting cleaning batch",
		slog.Int("files", len(files)),
		slog.String("strategy", *strategy),
		slog.Float64("outlier_threshold", *threshold),
		slog.String("output_dir", *outDir))

	pipeline := cleaning.NewPipeline(logger)
	writer := exporter.NewCSVWriter(&cfg.Paths)

	// Each file gets its own table and report, so the runs share nothing
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for _, file := range files {
		g.Go(func() error {
			return cleanFile(ctx, logger, pipeline, writer, runCfg, file, *outDir)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Cleaning batch failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Cleaning batch completed", slog.Int("files", len(files)))
}

// cleanFile runs the pipeline on one file and writes the cleaned table
// plus its report next to each other in outDir.
func cleanFile(ctx context.Context, logger *slog.Logger, pipeline *cleaning.Pipeline, writer *exporter.CSVWriter, cfg cleaning.Config, path, outDir string) error {
	table, err := ingest.LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	report, err := pipeline.Run(ctx, table, cfg)
	if err != nil {
		return fmt.Errorf("cleaning %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	cleanedPath := filepath.Join(outDir, "cleaned_"+base+".csv")
	reportPath := filepath.Join(outDir, "cleaned_"+base+"_report.json")

	if _, err := writer.WriteTable(cleanedPath, table); err != nil {
		return fmt.Errorf("writing %s: %w", cleanedPath, err)
	}
	if _, err := writer.WriteReport(reportPath, report); err != nil {
		return fmt.Errorf("writing %s: %w", reportPath, err)
	}

	logger.Info("File cleaned",
		slog.String("input", path),
		slog.String("output", cleanedPath),
		slog.Int("rows_before", report.RowsBefore),
		slog.Int("rows_after", report.RowsAfter),
		slog.Int("duplicates_removed", report.DuplicatesRemoved),
		slog.Int("missing_filled", report.TotalMissingFilled()),
		slog.Int("outliers_capped", report.TotalOutliersCapped()))
	return nil
}

// discoverFiles returns path itself for a regular file, or every
// CSV/Excel file directly inside it for a directory.
func discoverFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xls", ".xlsx":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}
