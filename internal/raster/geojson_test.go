package raster

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollection_SkipsNoData(t *testing.T) {
	g := mustGrid(t, 2, 1, 0, 0, 10)
	g.SetZ(0, 0, 0.75)
	// (1, 0) stays NoData

	fc := FeatureCollection(g, "suitability")
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, 0.75, f.Properties["suitability"])
	assert.Equal(t, 5.0, f.Point().X())
	assert.Equal(t, 5.0, f.Point().Y())
}

func TestWriteGeoJSON(t *testing.T) {
	g := mustGrid(t, 1, 1, 0, 0, 2)
	g.SetZ(0, 0, 1)

	var sb strings.Builder
	require.NoError(t, WriteGeoJSON(&sb, g))

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]float64 `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 1)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{1, 1}, doc.Features[0].Geometry.Coordinates)
	assert.Equal(t, 1.0, doc.Features[0].Properties["suitability"])
}
