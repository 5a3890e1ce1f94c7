package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathsConfig contains the file system layout: uploaded originals under
// uploads/, cleaned tables and reports under cleaned/, logs under logs/,
// all relative to the data directory unless absolute paths are given.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	UploadsDir string `yaml:"uploads_dir" envconfig:"UPLOADS_DIR"`
	CleanedDir string `yaml:"cleaned_dir" envconfig:"CLEANED_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// resolve fills derived directories from DataDir and makes everything
// absolute.
func (p *PathsConfig) resolve() error {
	if p.DataDir == "" {
		p.DataDir = "data"
	}
	abs, err := filepath.Abs(p.DataDir)
	if err != nil {
		return fmt.Errorf("failed to resolve data dir: %w", err)
	}
	p.DataDir = abs

	if p.UploadsDir == "" {
		p.UploadsDir = filepath.Join(p.DataDir, "uploads")
	}
	if p.CleanedDir == "" {
		p.CleanedDir = filepath.Join(p.DataDir, "cleaned")
	}
	if p.LogsDir == "" {
		p.LogsDir = filepath.Join(p.DataDir, "logs")
	}
	return nil
}

// EnsureDirectories creates every configured directory.
func (p *PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.UploadsDir, p.CleanedDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetUploadPath returns the full path for an uploaded file.
func (p *PathsConfig) GetUploadPath(filename string) string {
	return filepath.Join(p.UploadsDir, filename)
}

// GetCleanedPath returns the full path for a cleaned output file.
func (p *PathsConfig) GetCleanedPath(filename string) string {
	return filepath.Join(p.CleanedDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *PathsConfig) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
