package cleaning

import (
	"github.com/go-playground/validator/v10"

	apperrors "cleancli/internal/errors"
	"cleancli/pkg/contracts/domain"
)

// DefaultOutlierThreshold is the z-score beyond which numeric values
// are capped when no threshold is configured.
const DefaultOutlierThreshold = 3.0

// DefaultCategoricalRatio is the distinct-to-total ratio below which a
// text column is dictionary encoded by the type optimizer.
const DefaultCategoricalRatio = 0.5

var validate = validator.New()

// Config holds the per-run cleaning configuration. There is no
// process-wide configuration state: every run receives its own Config so
// concurrent runs stay independent.
type Config struct {
	Strategy         domain.Strategy `json:"strategy" validate:"required,oneof=delete zero mean mode"`
	OutlierThreshold float64         `json:"outlier_threshold" validate:"gt=0"`
	CategoricalRatio float64         `json:"categorical_ratio" validate:"gt=0,lte=1"`
}

// DefaultConfig returns the configuration matching the documented
// defaults: mean imputation, threshold 3.0, categorical ratio 0.5.
func DefaultConfig() Config {
	return Config{
		Strategy:         domain.StrategyMean,
		OutlierThreshold: DefaultOutlierThreshold,
		CategoricalRatio: DefaultCategoricalRatio,
	}
}

// Validate checks the configuration before a run mutates anything.
// Unknown strategies and non-positive thresholds are rejected with the
// corresponding configuration error.
func (c Config) Validate() error {
	if !c.Strategy.Valid() {
		return apperrors.UnknownStrategyError(string(c.Strategy))
	}
	if c.OutlierThreshold <= 0 {
		return apperrors.InvalidThresholdError(c.OutlierThreshold)
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// withDefaults fills unset optional fields so callers may zero-value
// everything but the strategy.
func (c Config) withDefaults() Config {
	if c.OutlierThreshold == 0 {
		c.OutlierThreshold = DefaultOutlierThreshold
	}
	if c.CategoricalRatio == 0 {
		c.CategoricalRatio = DefaultCategoricalRatio
	}
	return c
}
