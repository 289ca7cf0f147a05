package csvsource

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	data := `x,y,ffreq,landuse,lead,cadmium,elev
181072,333611,1,Ah,299,11.7,7.909
181025,333558,1,W,277,8.6,6.983
`
	samples, err := Read(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, 181072.0, samples[0].X)
	assert.Equal(t, "1", samples[0].FloodFreq)
	assert.Equal(t, "Ah", samples[0].LandUse)
	assert.Equal(t, 11.7, samples[0].Cadmium)
	assert.Equal(t, "W", samples[1].LandUse)
	assert.Equal(t, 6.983, samples[1].Elev)
}

func TestRead_ColumnOrderIndependent(t *testing.T) {
	data := `elev,LANDUSE,cadmium,lead,ffreq,y,x,extra
7.9,Ah,11.7,299,2,333611,181072,ignored
`
	samples, err := Read(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, samples, 1)

	assert.Equal(t, 181072.0, samples[0].X)
	assert.Equal(t, "2", samples[0].FloodFreq)
	assert.Equal(t, 7.9, samples[0].Elev)
}

func TestRead_MissingColumn(t *testing.T) {
	data := `x,y,ffreq,landuse,lead,cadmium
1,2,1,Ah,299,11.7
`
	_, err := Read(context.Background(), strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elev")
}

func TestRead_BadNumericValue(t *testing.T) {
	data := `x,y,ffreq,landuse,lead,cadmium,elev
181072,333611,1,Ah,high,11.7,7.9
`
	_, err := Read(context.Background(), strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "lead")
}

func TestRead_EmptyFileIsNoSamples(t *testing.T) {
	data := "x,y,ffreq,landuse,lead,cadmium,elev\n"
	samples, err := Read(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := `x,y,ffreq,landuse,lead,cadmium,elev
1,2,1,Ah,299,11.7,7.9
`
	_, err := Read(ctx, strings.NewReader(data))
	assert.ErrorIs(t, err, context.Canceled)
}
