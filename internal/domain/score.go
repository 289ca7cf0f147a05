package domain

import "fmt"

// ScoreConfig holds the reclass tables and per-factor weights for one
// scoring pass. The zero value is not usable; start from
// DefaultScoreConfig.
type ScoreConfig struct {
	FloodTable   LookupTable
	LandUseTable LookupTable

	// Weights maps factor names (FactorFlood etc.) to exponents.
	// Missing entries default to 1. Unknown names are rejected.
	Weights map[string]float64
}

// DefaultScoreConfig returns the shipped reclass tables with uniform
// weights.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		FloodTable:   DefaultFloodReturnPeriods(),
		LandUseTable: DefaultLandUseTiers(),
	}
}

// Scores is the result of scoring a sample set.
type Scores struct {
	// Values holds one suitability score in [0,1] per sample, in
	// sample order, renormalized so the maximum is exactly 1.
	Values []float64

	// Unmatched lists distinct categorical codes that fell back to a
	// table default, in first-seen order. Non-empty Unmatched is a
	// data-quality signal, not an error.
	Unmatched []string
}

// ScoreSamples derives the five normalized factors from the raw
// attributes and combines them into one suitability score per sample.
//
// Factor order (and weight lookup names): flood, landuse, lead,
// cadmium, elev. Flood and land use are table-scaled; lead and
// cadmium are inverted; elevation is direct.
func ScoreSamples(samples []SamplePoint, cfg ScoreConfig) (Scores, error) {
	if len(samples) == 0 {
		return Scores{}, ErrEmptyInput
	}

	weights, err := weightVector(cfg.Weights)
	if err != nil {
		return Scores{}, err
	}

	ffreq := make([]string, len(samples))
	landuse := make([]string, len(samples))
	lead := make([]float64, len(samples))
	cadmium := make([]float64, len(samples))
	elev := make([]float64, len(samples))
	for i, s := range samples {
		ffreq[i] = s.FloodFreq
		landuse[i] = s.LandUse
		lead[i] = s.Lead
		cadmium[i] = s.Cadmium
		elev[i] = s.Elev
	}

	floodRaw, floodMiss := Recode(cfg.FloodTable, ffreq)
	landRaw, landMiss := Recode(cfg.LandUseTable, landuse)

	flood, err := NormalizeBy(floodRaw, cfg.FloodTable.MaxValue())
	if err != nil {
		return Scores{}, fmt.Errorf("flood factor: %w", err)
	}
	land, err := NormalizeBy(landRaw, cfg.LandUseTable.MaxValue())
	if err != nil {
		return Scores{}, fmt.Errorf("landuse factor: %w", err)
	}
	leadF, err := NormalizeInverted(lead)
	if err != nil {
		return Scores{}, fmt.Errorf("lead factor: %w", err)
	}
	cadF, err := NormalizeInverted(cadmium)
	if err != nil {
		return Scores{}, fmt.Errorf("cadmium factor: %w", err)
	}
	elevF, err := Normalize(elev)
	if err != nil {
		return Scores{}, fmt.Errorf("elev factor: %w", err)
	}

	values, err := Combine([][]float64{flood, land, leadF, cadF, elevF}, weights)
	if err != nil {
		return Scores{}, err
	}

	return Scores{
		Values:    values,
		Unmatched: append(floodMiss, landMiss...),
	}, nil
}

// weightVector expands a named weight map into FactorNames order.
func weightVector(weights map[string]float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, nil
	}
	known := make(map[string]bool, len(FactorNames))
	for _, name := range FactorNames {
		known[name] = true
	}
	for name := range weights {
		if !known[name] {
			return nil, fmt.Errorf("unknown factor %q in weights", name)
		}
	}
	out := make([]float64, len(FactorNames))
	for i, name := range FactorNames {
		w, ok := weights[name]
		if !ok {
			w = 1
		}
		out[i] = w
	}
	return out, nil
}
