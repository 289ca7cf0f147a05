// Package interp implements inverse-distance-weighted interpolation
// from irregular sample points onto a regular grid.
package interp

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/riverbend-gis/suitability-grid/internal/raster"
)

// Defaults for the interpolation parameters.
const (
	DefaultNeighbors = 7
	DefaultPower     = 0.5
)

// zeroDistTol is the distance under which a prediction location is
// considered coincident with a sample and takes its value exactly.
const zeroDistTol = 1e-12

// ErrNoSamples is returned when interpolation is attempted with no
// sample points.
var ErrNoSamples = errors.New("no sample points to interpolate from")

// Sample is one scored point.
type Sample struct {
	geom.Point
	Score float64
}

// IDW predicts values as the inverse-distance-weighted average of the
// K nearest samples, weight = 1/distance^power. It is immutable after
// construction and safe for concurrent At calls.
type IDW struct {
	k     int
	power float64
	index *rtree.Rtree
}

// NewIDW builds an interpolator over the samples. k is clamped to the
// number of available samples. Fails with ErrNoSamples for an empty
// sample set and with a parameter error for non-positive k or power.
func NewIDW(samples []Sample, k int, power float64) (*IDW, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if k <= 0 {
		return nil, fmt.Errorf("neighbor count %d must be positive", k)
	}
	if power <= 0 {
		return nil, fmt.Errorf("power %g must be positive", power)
	}
	if k > len(samples) {
		k = len(samples)
	}
	index := rtree.NewTree(25, 50)
	for i := range samples {
		s := samples[i]
		index.Insert(&s)
	}
	return &IDW{k: k, power: power, index: index}, nil
}

// At predicts the value at (x, y). A prediction location coinciding
// with a sample returns that sample's score exactly instead of
// dividing by a zero distance.
func (it *IDW) At(x, y float64) float64 {
	var num, den float64
	for _, nb := range it.index.NearestNeighbors(it.k, geom.Point{X: x, Y: y}) {
		if nb == nil {
			continue
		}
		s := nb.(*Sample)
		d := math.Hypot(s.X-x, s.Y-y)
		if d <= zeroDistTol {
			return s.Score
		}
		w := 1 / math.Pow(d, it.power)
		num += w * s.Score
		den += w
	}
	return num / den
}

// Grid predicts a value for every cell of a grid congruent with ref.
// Each cell is independent, so the fill could be parallelized; the
// sequential loop is fast enough for survey-sized inputs.
func (it *IDW) Grid(ref *raster.Grid) *raster.Grid {
	out := raster.NewLike(ref)
	cols, rows := out.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.SetZ(c, r, it.At(out.X(c), out.Y(r)))
		}
	}
	return out
}
