package domain

// LookupEntry is one code-to-value mapping in a LookupTable.
type LookupEntry struct {
	Code  string
	Value float64
}

// LookupTable is an immutable ordered mapping from a categorical code
// to its numeric substitute. Codes absent from the table resolve to
// the table default instead of failing; callers that care collect the
// unmatched codes from Recode.
//
// Tables are values, not package globals, so runs with different
// reclass policies can coexist.
type LookupTable struct {
	entries []LookupEntry
	byCode  map[string]float64
	def     float64
}

// NewLookupTable builds a table with the given default for unmatched
// codes. Entry order is preserved; a duplicated code keeps its last
// value.
func NewLookupTable(def float64, entries ...LookupEntry) LookupTable {
	t := LookupTable{
		entries: make([]LookupEntry, len(entries)),
		byCode:  make(map[string]float64, len(entries)),
		def:     def,
	}
	copy(t.entries, entries)
	for _, e := range entries {
		t.byCode[e.Code] = e.Value
	}
	return t
}

// Lookup resolves a code, reporting whether it was present.
func (t LookupTable) Lookup(code string) (float64, bool) {
	v, ok := t.byCode[code]
	if !ok {
		return t.def, false
	}
	return v, true
}

// Default returns the value substituted for unmatched codes.
func (t LookupTable) Default() float64 { return t.def }

// Len returns the number of entries.
func (t LookupTable) Len() int { return len(t.entries) }

// MaxValue returns the largest value in the table, or the default if
// the table is empty. Categorical factors are scaled by this.
func (t LookupTable) MaxValue() float64 {
	max := t.def
	for i, e := range t.entries {
		if i == 0 || e.Value > max {
			max = e.Value
		}
	}
	return max
}

// DefaultFloodReturnPeriods maps a flood-frequency class to its return
// period in years. Class 1 floods roughly every year, class 2 once a
// decade, class 3 once in fifty years.
func DefaultFloodReturnPeriods() LookupTable {
	return NewLookupTable(0,
		LookupEntry{Code: "1", Value: 1},
		LookupEntry{Code: "2", Value: 10},
		LookupEntry{Code: "3", Value: 50},
	)
}

// DefaultLandUseTiers maps land-use codes to suitability tiers 0-3.
// Pasture and meadow rank highest, arable uses mid, built-up and
// recreational uses are excluded outright. Codes not listed (and the
// sentinel "DEN") take the default tier 0, which vetoes the location
// under multiplicative combination.
func DefaultLandUseTiers() LookupTable {
	return NewLookupTable(0,
		LookupEntry{Code: "W", Value: 3},  // pasture
		LookupEntry{Code: "Ah", Value: 2}, // arable, hay
		LookupEntry{Code: "Am", Value: 2}, // arable, maize
		LookupEntry{Code: "Ab", Value: 2}, // arable, beets
		LookupEntry{Code: "Ag", Value: 2}, // arable, grain
		LookupEntry{Code: "Aa", Value: 2}, // arable, other
		LookupEntry{Code: "Fw", Value: 1}, // wet forest
		LookupEntry{Code: "Fh", Value: 1}, // dry forest
		LookupEntry{Code: "Ga", Value: 1}, // gardens
		LookupEntry{Code: "Bw", Value: 0}, // buildings
		LookupEntry{Code: "SPO", Value: 0},
		LookupEntry{Code: "STA", Value: 0},
		LookupEntry{Code: "DEN", Value: 0},
	)
}
