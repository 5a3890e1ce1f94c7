package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cleancli/internal/errors"
	"cleancli/pkg/contracts/domain"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid defaults",
			cfg:  DefaultConfig(),
		},
		{
			name: "delete strategy",
			cfg:  Config{Strategy: domain.StrategyDelete, OutlierThreshold: 2.5, CategoricalRatio: 0.3},
		},
		{
			name:    "unknown strategy",
			cfg:     Config{Strategy: "median", OutlierThreshold: 3, CategoricalRatio: 0.5},
			wantErr: apperrors.ErrUnknownStrategy,
		},
		{
			name:    "empty strategy",
			cfg:     Config{OutlierThreshold: 3, CategoricalRatio: 0.5},
			wantErr: apperrors.ErrUnknownStrategy,
		},
		{
			name:    "zero threshold",
			cfg:     Config{Strategy: domain.StrategyMean, CategoricalRatio: 0.5},
			wantErr: apperrors.ErrInvalidThreshold,
		},
		{
			name:    "negative threshold",
			cfg:     Config{Strategy: domain.StrategyMean, OutlierThreshold: -2, CategoricalRatio: 0.5},
			wantErr: apperrors.ErrInvalidThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{Strategy: domain.StrategyMode}.withDefaults()

	assert.Equal(t, domain.StrategyMode, cfg.Strategy)
	assert.Equal(t, DefaultOutlierThreshold, cfg.OutlierThreshold)
	assert.Equal(t, DefaultCategoricalRatio, cfg.CategoricalRatio)

	custom := Config{Strategy: domain.StrategyZero, OutlierThreshold: 1.5, CategoricalRatio: 0.2}.withDefaults()
	assert.Equal(t, 1.5, custom.OutlierThreshold)
	assert.Equal(t, 0.2, custom.CategoricalRatio)
}
