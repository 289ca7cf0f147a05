package domain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Recode maps each raw categorical value through the table. The
// result always has one value per input: codes missing from the table
// take the table default rather than failing. The second return lists
// the distinct unmatched codes in first-seen order so callers can
// warn about them.
func Recode(table LookupTable, raws []string) ([]float64, []string) {
	out := make([]float64, len(raws))
	var unmatched []string
	seen := make(map[string]bool)
	for i, raw := range raws {
		v, ok := table.Lookup(raw)
		if !ok && !seen[raw] {
			seen[raw] = true
			unmatched = append(unmatched, raw)
		}
		out[i] = v
	}
	return out, unmatched
}

// Normalize rescales values onto [0,1] by dividing by the observed
// maximum. The maximum of the result is exactly 1. Returns
// ErrEmptyInput for no values and ErrDivisionByZero when the maximum
// is not positive.
func Normalize(vals []float64) ([]float64, error) {
	return normalizeBy(vals, observedMax)
}

// NormalizeInverted rescales "lower is better" values: 1 - v/max.
// Failure modes match Normalize.
func NormalizeInverted(vals []float64) ([]float64, error) {
	out, err := normalizeBy(vals, observedMax)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		out[i] = 1 - v
	}
	return out, nil
}

// NormalizeBy rescales values by a fixed denominator, used for
// categorical factors whose scale comes from the lookup table rather
// than the observed data.
func NormalizeBy(vals []float64, denom float64) ([]float64, error) {
	return normalizeBy(vals, func([]float64) float64 { return denom })
}

func normalizeBy(vals []float64, denom func([]float64) float64) ([]float64, error) {
	if len(vals) == 0 {
		return nil, ErrEmptyInput
	}
	d := denom(vals)
	if d <= 0 {
		return nil, fmt.Errorf("normalize over maximum %g: %w", d, ErrDivisionByZero)
	}
	out := make([]float64, len(vals))
	for i, v := range vals {
		// Division, not multiplication by a reciprocal, so the
		// maximum normalizes to exactly 1.
		out[i] = v / d
	}
	return out, nil
}

func observedMax(vals []float64) float64 { return floats.Max(vals) }
