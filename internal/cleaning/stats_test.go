package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 5.0, mean([]float64{5}))
	assert.Equal(t, 117.0, mean([]float64{34, 200}))
	assert.InDelta(t, 2.5, mean([]float64{1, 2, 3, 4}), 1e-9)
}

func TestSampleStdDev(t *testing.T) {
	tests := []struct {
		name     string
		vals     []float64
		expected float64
	}{
		{name: "empty", vals: nil, expected: 0},
		{name: "single value", vals: []float64{7}, expected: 0},
		{name: "constant", vals: []float64{4, 4, 4}, expected: 0},
		{name: "two values", vals: []float64{34, 200}, expected: 117.3797256},
		{name: "symmetric", vals: []float64{34, 117, 200}, expected: 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mu := mean(tt.vals)
			assert.InDelta(t, tt.expected, sampleStdDev(tt.vals, mu), 1e-6)
		})
	}
}

func TestModeFloat(t *testing.T) {
	_, ok := modeFloat(nil)
	assert.False(t, ok)

	m, ok := modeFloat([]float64{3, 1, 3, 2})
	assert.True(t, ok)
	assert.Equal(t, 3.0, m)

	// Tie resolves to the value seen first
	m, ok = modeFloat([]float64{2, 1, 1, 2})
	assert.True(t, ok)
	assert.Equal(t, 2.0, m)
}

func TestModeString(t *testing.T) {
	_, ok := modeString(nil)
	assert.False(t, ok)

	m, ok := modeString([]string{"F", "M", "F"})
	assert.True(t, ok)
	assert.Equal(t, "F", m)

	m, ok = modeString([]string{"M", "F", "F", "M"})
	assert.True(t, ok)
	assert.Equal(t, "M", m)
}
