package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cleancli/pkg/contracts/domain"
)

// WriteReport serializes a cleaning report to an indented JSON file.
func (w *CSVWriter) WriteReport(filename string, report *domain.CleaningReport) (string, error) {
	path := w.resolvePath(filename)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
