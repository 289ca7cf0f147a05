package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecode_KnownCodes(t *testing.T) {
	table := NewLookupTable(0,
		LookupEntry{Code: "1", Value: 1},
		LookupEntry{Code: "2", Value: 10},
		LookupEntry{Code: "3", Value: 50},
	)

	vals, unmatched := Recode(table, []string{"3", "1", "2"})

	assert.Equal(t, []float64{50, 1, 10}, vals)
	assert.Empty(t, unmatched)
}

func TestRecode_UnmatchedFallsBackToDefault(t *testing.T) {
	table := NewLookupTable(0, LookupEntry{Code: "W", Value: 3})

	vals, unmatched := Recode(table, []string{"W", "DEN", "???", "DEN"})

	// Total: every input yields a value, unresolved ones the default.
	assert.Equal(t, []float64{3, 0, 0, 0}, vals)
	// Distinct unmatched codes in first-seen order.
	assert.Equal(t, []string{"DEN", "???"}, unmatched)
}

func TestRecode_NonZeroDefault(t *testing.T) {
	table := NewLookupTable(1.5, LookupEntry{Code: "a", Value: 2})

	vals, unmatched := Recode(table, []string{"b"})

	assert.Equal(t, []float64{1.5}, vals)
	assert.Equal(t, []string{"b"}, unmatched)
}

func TestNormalize_RangeAndMax(t *testing.T) {
	vals, err := Normalize([]float64{2, 8, 4})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.25, 1, 0.5}, vals)
	for _, v := range vals {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestNormalize_ZeroMax(t *testing.T) {
	_, err := Normalize([]float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNormalizeInverted_SelfConsistent(t *testing.T) {
	raw := []float64{3, 7, 14, 0.5}

	direct, err := Normalize(raw)
	require.NoError(t, err)
	inverted, err := NormalizeInverted(raw)
	require.NoError(t, err)

	for i := range raw {
		assert.InDelta(t, 1-direct[i], inverted[i], 1e-15)
	}
}

func TestNormalizeInverted_DoesNotMutateInput(t *testing.T) {
	raw := []float64{1, 2}
	_, err := NormalizeInverted(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, raw)
}

func TestNormalizeBy_TableScale(t *testing.T) {
	vals, err := NormalizeBy([]float64{0, 3, 1}, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1, 1.0 / 3}, vals, 1e-15)
}

func TestNormalizeBy_ZeroDenominator(t *testing.T) {
	_, err := NormalizeBy([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestLookupTable_MaxValue(t *testing.T) {
	assert.Equal(t, float64(50), DefaultFloodReturnPeriods().MaxValue())
	assert.Equal(t, float64(3), DefaultLandUseTiers().MaxValue())
	assert.Equal(t, 0.5, NewLookupTable(0.5).MaxValue()) // empty table
}
