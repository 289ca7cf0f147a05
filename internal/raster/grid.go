// Package raster provides an in-memory regular grid with ESRI
// ASCII-style georeferencing, plus reading, writing, and masking.
package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/mat"
)

// DefaultNoData is the marker written for cells without a value when
// the source raster does not declare one.
const DefaultNoData = -9999

// ErrMisaligned is returned when two grids that must be congruent
// (same shape, cell size, and origin) are not.
var ErrMisaligned = errors.New("grids are not aligned")

// Grid is a dense regular raster. Values are stored row-major with
// row 0 at the top, matching the ESRI ASCII layout; X/Y report cell
// centers in grid coordinates.
type Grid struct {
	ncols, nrows int
	xll, yll     float64 // lower-left corner of the grid
	cellSize     float64
	noData       float64
	vals         *mat.Dense // nrows x ncols
}

// New creates a grid with every cell set to the NoData marker.
func New(ncols, nrows int, xll, yll, cellSize, noData float64) (*Grid, error) {
	if ncols <= 0 || nrows <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d must be positive", ncols, nrows)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size %g must be positive", cellSize)
	}
	g := &Grid{
		ncols:    ncols,
		nrows:    nrows,
		xll:      xll,
		yll:      yll,
		cellSize: cellSize,
		noData:   noData,
		vals:     mat.NewDense(nrows, ncols, nil),
	}
	for r := 0; r < nrows; r++ {
		for c := 0; c < ncols; c++ {
			g.vals.Set(r, c, noData)
		}
	}
	return g, nil
}

// NewLike creates an all-NoData grid congruent with ref.
func NewLike(ref *Grid) *Grid {
	g, _ := New(ref.ncols, ref.nrows, ref.xll, ref.yll, ref.cellSize, ref.noData)
	return g
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (cols, rows int) { return g.ncols, g.nrows }

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// NoData returns the marker for cells without a value.
func (g *Grid) NoData() float64 { return g.noData }

// Origin returns the lower-left corner of the grid.
func (g *Grid) Origin() (x, y float64) { return g.xll, g.yll }

// Z returns the value at column c, row r (row 0 at the top).
func (g *Grid) Z(c, r int) float64 { return g.vals.At(r, c) }

// SetZ sets the value at column c, row r.
func (g *Grid) SetZ(c, r int, v float64) { g.vals.Set(r, c, v) }

// SetNoData marks the cell at column c, row r as having no value.
func (g *Grid) SetNoData(c, r int) { g.vals.Set(r, c, g.noData) }

// IsNoData reports whether the cell at column c, row r has no value.
func (g *Grid) IsNoData(c, r int) bool {
	v := g.vals.At(r, c)
	return v == g.noData || math.IsNaN(v)
}

// X returns the center x coordinate of column c.
func (g *Grid) X(c int) float64 {
	return g.xll + (float64(c)+0.5)*g.cellSize
}

// Y returns the center y coordinate of row r. Row 0 is the top row,
// so y decreases with r.
func (g *Grid) Y(r int) float64 {
	return g.yll + (float64(g.nrows-r)-0.5)*g.cellSize
}

// Bounds returns the outer envelope of the grid.
func (g *Grid) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: g.xll, Y: g.yll},
		Max: geom.Point{
			X: g.xll + float64(g.ncols)*g.cellSize,
			Y: g.yll + float64(g.nrows)*g.cellSize,
		},
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := *g
	out.vals = mat.DenseCopyOf(g.vals)
	return &out
}

// Aligned reports whether o is congruent with g: same dimensions,
// same cell size, and same origin within a small fraction of a cell.
// A mismatch is a usage error, wrapped around ErrMisaligned so
// callers can test for it.
func (g *Grid) Aligned(o *Grid) error {
	if g.ncols != o.ncols || g.nrows != o.nrows {
		return fmt.Errorf("%w: dimensions %dx%d vs %dx%d",
			ErrMisaligned, g.ncols, g.nrows, o.ncols, o.nrows)
	}
	eps := g.cellSize * 1e-6
	if math.Abs(g.cellSize-o.cellSize) > eps {
		return fmt.Errorf("%w: cell size %g vs %g", ErrMisaligned, g.cellSize, o.cellSize)
	}
	if math.Abs(g.xll-o.xll) > eps || math.Abs(g.yll-o.yll) > eps {
		return fmt.Errorf("%w: origin (%g, %g) vs (%g, %g)",
			ErrMisaligned, g.xll, g.yll, o.xll, o.yll)
	}
	return nil
}

// Stats summarizes the valid cells of a grid.
type Stats struct {
	Min, Max, Mean float64
	Valid, NoData  int
}

// Stats computes min, max, and mean over valid cells. Min and Max are
// zero when no valid cells exist.
func (g *Grid) Stats() Stats {
	var s Stats
	var sum float64
	for r := 0; r < g.nrows; r++ {
		for c := 0; c < g.ncols; c++ {
			if g.IsNoData(c, r) {
				s.NoData++
				continue
			}
			v := g.vals.At(r, c)
			if s.Valid == 0 {
				s.Min, s.Max = v, v
			} else {
				s.Min = math.Min(s.Min, v)
				s.Max = math.Max(s.Max, v)
			}
			sum += v
			s.Valid++
		}
	}
	if s.Valid > 0 {
		s.Mean = sum / float64(s.Valid)
	}
	return s
}
