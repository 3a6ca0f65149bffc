// Package lut builds and caches the candidate colour table: the exhaustive,
// index-aligned mapping from every grid point of the RGB cube to its
// CAM02-UCS coordinate.
package lut

import (
	"fmt"

	"github.com/jmylchreest/glasbey/internal/cam02"
	"github.com/jmylchreest/glasbey/internal/colour"
)

// DefaultResolution is the number of grid points per RGB channel. At 256 the
// table covers every representable 8-bit colour.
const DefaultResolution = 256

// Table is the immutable candidate table. A candidate's index is its stable
// identity: index = r*resolution² + g*resolution + b in grid steps, so the
// table never stores the RGB triplets themselves.
type Table struct {
	resolution int
	grid       []uint8
	coords     []float32 // 3 values per candidate, index-aligned
}

// Grid returns the channel values sampled at the given resolution, evenly
// spaced over 0..255. Resolution 256 yields the identity grid.
func Grid(resolution int) []uint8 {
	g := make([]uint8, resolution)
	for i := range g {
		g[i] = uint8((i*255 + (resolution-1)/2) / (resolution - 1))
	}
	return g
}

// New wraps prebuilt coordinates in a Table. len(coords) must be
// 3*resolution³.
func New(resolution int, coords []float32) (*Table, error) {
	if resolution < 2 || resolution > 256 {
		return nil, fmt.Errorf("resolution %d out of range [2,256]", resolution)
	}
	n := resolution * resolution * resolution
	if len(coords) != 3*n {
		return nil, fmt.Errorf("expected %d coordinate values for resolution %d, got %d", 3*n, resolution, len(coords))
	}
	return &Table{resolution: resolution, grid: Grid(resolution), coords: coords}, nil
}

// Resolution returns the per-channel grid resolution.
func (t *Table) Resolution() int { return t.resolution }

// Len returns the number of candidates.
func (t *Table) Len() int { return len(t.coords) / 3 }

// Coords exposes the raw coordinate buffer, 3 float32 values per candidate.
// It is shared and must be treated as read-only.
func (t *Table) Coords() []float32 { return t.coords }

// CoordAt returns the CAM02-UCS coordinate of candidate i.
func (t *Table) CoordAt(i int) cam02.JAB {
	return cam02.JAB{
		J: float64(t.coords[3*i]),
		A: float64(t.coords[3*i+1]),
		B: float64(t.coords[3*i+2]),
	}
}

// RGBAt returns the RGB triplet of candidate i, derived from its index.
func (t *Table) RGBAt(i int) colour.RGB {
	res := t.resolution
	return colour.RGB{
		R: t.grid[i/(res*res)],
		G: t.grid[(i/res)%res],
		B: t.grid[i%res],
	}
}
