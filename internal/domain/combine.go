package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Combine multiplies aligned normalized factor sequences into one
// suitability score per point and renormalizes the result so the best
// point scores exactly 1.
//
// Each factor is raised to its weight before multiplying; nil weights
// mean all ones, which reduces to a plain product. Any factor at 0
// with a positive weight drives that point's score to 0 — a failed
// constraint vetoes the location regardless of the other factors.
//
// Returns ErrEmptyInput for no factors, an error for mismatched
// lengths or non-positive weights, and ErrDivisionByZero when every
// combined score is 0.
func Combine(factors [][]float64, weights []float64) ([]float64, error) {
	if len(factors) == 0 || len(factors[0]) == 0 {
		return nil, ErrEmptyInput
	}
	n := len(factors[0])
	for i, f := range factors {
		if len(f) != n {
			return nil, fmt.Errorf("factor %d has %d values, want %d", i, len(f), n)
		}
	}
	if weights == nil {
		weights = make([]float64, len(factors))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(factors) {
		return nil, fmt.Errorf("%d weights for %d factors", len(weights), len(factors))
	}
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("weight %d is %g, must be positive", i, w)
		}
	}

	scores := make([]float64, n)
	for j := range scores {
		s := 1.0
		for i, f := range factors {
			if w := weights[i]; w == 1 {
				s *= f[j]
			} else {
				s *= math.Pow(f[j], w)
			}
		}
		scores[j] = s
	}

	max := floats.Max(scores)
	if max <= 0 {
		return nil, fmt.Errorf("all combined scores are zero: %w", ErrDivisionByZero)
	}
	for j := range scores {
		// Division so the best score renormalizes to exactly 1.
		scores[j] /= max
	}
	return scores, nil
}
