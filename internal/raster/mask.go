package raster

import "fmt"

// Mask sets every cell of g whose counterpart in ref is NoData to g's
// NoData marker, leaving covered cells unchanged. The grids must be
// congruent; a mismatch fails with an ErrMisaligned-wrapped error
// rather than silently truncating.
//
// Masking is idempotent: applying the same reference twice leaves the
// grid unchanged.
func Mask(g, ref *Grid) error {
	if err := g.Aligned(ref); err != nil {
		return fmt.Errorf("mask: %w", err)
	}
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ref.IsNoData(c, r) {
				g.SetNoData(c, r)
			}
		}
	}
	return nil
}
