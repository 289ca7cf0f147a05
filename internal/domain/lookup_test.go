package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupTable(t *testing.T) {
	table := NewLookupTable(-1,
		LookupEntry{Code: "a", Value: 2},
		LookupEntry{Code: "b", Value: 5},
		LookupEntry{Code: "a", Value: 3},
	)

	v, ok := table.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	// Duplicate code keeps the last value.
	v, ok = table.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	// Unmatched codes resolve to the default.
	v, ok = table.Lookup("z")
	assert.False(t, ok)
	assert.Equal(t, -1.0, v)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, -1.0, table.Default())
	assert.Equal(t, 5.0, table.MaxValue())
}

func TestLookupTable_MaxValueEmpty(t *testing.T) {
	table := NewLookupTable(7)
	assert.Equal(t, 7.0, table.MaxValue())
}

func TestDefaultTables(t *testing.T) {
	flood := DefaultFloodReturnPeriods()
	assert.Equal(t, 50.0, flood.MaxValue())
	v, ok := flood.Lookup("2")
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)

	landuse := DefaultLandUseTiers()
	assert.Equal(t, 3.0, landuse.MaxValue())

	// Excluded uses carry tier zero so they veto the score.
	for _, code := range []string{"Bw", "SPO", "STA", "DEN"} {
		v, ok := landuse.Lookup(code)
		assert.True(t, ok, code)
		assert.Equal(t, 0.0, v, code)
	}
}
