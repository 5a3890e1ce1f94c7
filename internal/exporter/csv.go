package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cleancli/internal/config"
	"cleancli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.PathsConfig
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.PathsConfig) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes a cleaned table to the cleaned output directory
// with a UTF-8 BOM so Excel opens it correctly.
func (w *CSVWriter) WriteTable(filename string, table *domain.Table) (string, error) {
	records := make([][]string, table.RowCount())
	for i := 0; i < table.RowCount(); i++ {
		records[i] = table.Row(i)
	}

	path := w.resolvePath(filename)
	err := w.WriteCSV(path, WriteOptions{
		Headers:   table.Headers(),
		Records:   records,
		BOMPrefix: true,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(fullPath string, options WriteOptions) error {
	slog.Debug("writing CSV file",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// resolvePath places bare filenames in the cleaned output directory and
// leaves absolute or already-qualified paths alone.
func (w *CSVWriter) resolvePath(filename string) string {
	if filepath.IsAbs(filename) || filepath.Dir(filename) != "." {
		return filename
	}
	if w.paths == nil {
		return filename
	}
	return w.paths.GetCleanedPath(filename)
}
