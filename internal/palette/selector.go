package palette

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/jmylchreest/glasbey/internal/cam02"
	"github.com/jmylchreest/glasbey/internal/colour"
)

// sentinel marking candidates that can never be chosen: ineligible under the
// constraints, or already selected.
var never = float32(math.Inf(-1))

// Selector runs greedy farthest-point selection over a candidate table. It
// keeps, per candidate, the minimum CAM02-UCS distance to every colour
// chosen so far, so growing a palette is a sequence of Next calls and never
// a recompute from scratch.
//
// A Selector owns its min-distance state and must not be shared across
// concurrent generations. The coordinate buffer is read-only and may be
// shared freely.
type Selector struct {
	coords   []float32 // 3 values per candidate, shared read-only
	minDist  []float32
	selected *roaring.Bitmap
	eligible int
}

// NewSelector seeds the min-distance state from the base palette
// coordinates. An empty seed set defaults to a single white entry. The mask
// is consumed as-is and not retained.
func NewSelector(coords []float32, mask *roaring.Bitmap, seeds []cam02.JAB) *Selector {
	s := &Selector{
		coords:   coords,
		minDist:  make([]float32, len(coords)/3),
		selected: roaring.New(),
		eligible: int(mask.GetCardinality()),
	}
	for i := range s.minDist {
		s.minDist[i] = never
	}
	pos := float32(math.Inf(1))
	it := mask.Iterator()
	for it.HasNext() {
		s.minDist[it.Next()] = pos
	}

	if len(seeds) == 0 {
		seeds = []cam02.JAB{colour.ToUCS(colour.RGB{R: 255, G: 255, B: 255})}
	}
	for _, seed := range seeds {
		s.update(seed)
	}
	return s
}

// Eligible returns the number of candidates that satisfied the constraints
// at session start.
func (s *Selector) Eligible() int { return s.eligible }

// Remaining returns how many eligible candidates have not been selected yet.
func (s *Selector) Remaining() int { return s.eligible - int(s.selected.GetCardinality()) }

// Next selects the eligible, unselected candidate whose minimum distance to
// the palette so far is largest; ties go to the lowest index. It then folds
// the chosen colour into the min-distance state with a single pass over all
// candidates, which is the dominant per-step cost.
func (s *Selector) Next() (int, cam02.JAB, error) {
	bestIdx := -1
	best := never
	for i, d := range s.minDist {
		if d > best {
			best = d
			bestIdx = i
		}
	}
	if bestIdx < 0 || math.IsInf(float64(best), 0) {
		return 0, cam02.JAB{}, &InsufficientCandidatesError{Eligible: s.eligible}
	}

	s.minDist[bestIdx] = never
	s.selected.Add(uint32(bestIdx))

	chosen := cam02.JAB{
		J: float64(s.coords[3*bestIdx]),
		A: float64(s.coords[3*bestIdx+1]),
		B: float64(s.coords[3*bestIdx+2]),
	}
	s.update(chosen)
	return bestIdx, chosen, nil
}

// update lowers every live candidate's running minimum by its distance to p.
func (s *Selector) update(p cam02.JAB) {
	pj := float32(p.J)
	pa := float32(p.A)
	pb := float32(p.B)
	c := s.coords
	for i, off := 0, 0; i < len(s.minDist); i, off = i+1, off+3 {
		if s.minDist[i] == never {
			continue
		}
		dj := c[off] - pj
		da := c[off+1] - pa
		db := c[off+2] - pb
		d := float32(math.Sqrt(float64(dj*dj + da*da + db*db)))
		if d < s.minDist[i] {
			s.minDist[i] = d
		}
	}
}
