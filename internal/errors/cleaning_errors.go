package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cleaning core. Configuration errors reject a
// run before any mutation; boundary errors come from ingestion.
var (
	// ErrUnknownStrategy is returned when the missing-value strategy
	// selector is not one of delete, zero, mean or mode.
	ErrUnknownStrategy = errors.New("unknown missing value strategy")

	// ErrInvalidThreshold is returned for a non-positive z-score threshold.
	ErrInvalidThreshold = errors.New("outlier threshold must be positive")

	// ErrEmptyInput is returned by ingestion when a file yields no
	// columns. An empty Table inside the pipeline is a no-op, not an error.
	ErrEmptyInput = errors.New("input contains no data")

	// ErrUnsupportedFile is returned for file extensions other than
	// .csv, .xls and .xlsx.
	ErrUnsupportedFile = errors.New("unsupported file format")
)

// Is wraps the standard library errors.Is for callers importing only
// this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// UnknownStrategyError builds an ErrUnknownStrategy with the rejected
// selector attached.
func UnknownStrategyError(strategy string) error {
	return fmt.Errorf("%w: %q (expected delete, zero, mean or mode)", ErrUnknownStrategy, strategy)
}

// InvalidThresholdError builds an ErrInvalidThreshold with the rejected
// value attached.
func InvalidThresholdError(threshold float64) error {
	return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
}

// UnsupportedFileError builds an ErrUnsupportedFile with the extension
// attached.
func UnsupportedFileError(ext string) error {
	return fmt.Errorf("%w: %q (use .csv, .xls or .xlsx)", ErrUnsupportedFile, ext)
}

// IsConfigurationError reports whether err is a per-run configuration
// problem the caller can fix by re-invoking with valid values.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownStrategy) || errors.Is(err, ErrInvalidThreshold)
}
