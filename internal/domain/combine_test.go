package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombine_UniformWeightsIsProduct(t *testing.T) {
	scores, err := Combine([][]float64{
		{1.0, 0.5},
		{0.5, 0.5},
	}, nil)
	require.NoError(t, err)

	// Products are 0.5 and 0.25; renormalized by max 0.5.
	assert.InDeltaSlice(t, []float64{1, 0.5}, scores, 1e-15)
}

func TestCombine_VetoProperty(t *testing.T) {
	scores, err := Combine([][]float64{
		{0, 1},
		{1, 0.5},
		{0.9, 0.9},
	}, nil)
	require.NoError(t, err)

	// A single zero factor drives the point to exactly zero.
	assert.Equal(t, 0.0, scores[0])
	assert.Equal(t, 1.0, scores[1])
}

func TestCombine_RenormalizedMaxIsOne(t *testing.T) {
	scores, err := Combine([][]float64{
		{0.2, 0.7, 0.4},
		{0.3, 0.6, 0.9},
	}, nil)
	require.NoError(t, err)

	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	assert.Equal(t, 1.0, max)
}

func TestCombine_WeightsAsExponents(t *testing.T) {
	scores, err := Combine([][]float64{
		{0.5, 1.0},
	}, []float64{2})
	require.NoError(t, err)

	// 0.25 and 1.0, max already 1.
	assert.InDeltaSlice(t, []float64{0.25, 1}, scores, 1e-15)
}

func TestCombine_VetoSurvivesFractionalWeight(t *testing.T) {
	scores, err := Combine([][]float64{
		{0, 1},
		{1, 1},
	}, []float64{0.5, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, scores[0])
}

func TestCombine_AllZeroScores(t *testing.T) {
	_, err := Combine([][]float64{
		{0, 0},
		{1, 1},
	}, nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestCombine_MismatchedLengths(t *testing.T) {
	_, err := Combine([][]float64{
		{1, 1},
		{1},
	}, nil)
	assert.Error(t, err)
}

func TestCombine_RejectsNonPositiveWeight(t *testing.T) {
	_, err := Combine([][]float64{{1}}, []float64{0})
	assert.Error(t, err)

	_, err = Combine([][]float64{{1}}, []float64{-1})
	assert.Error(t, err)
}

func TestCombine_Empty(t *testing.T) {
	_, err := Combine(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}
