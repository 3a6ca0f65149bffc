package palette

import (
	"math"
	"math/rand"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/jmylchreest/glasbey/internal/cam02"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCoords(points [][3]float64) []float32 {
	coords := make([]float32, 0, 3*len(points))
	for _, p := range points {
		coords = append(coords, float32(p[0]), float32(p[1]), float32(p[2]))
	}
	return coords
}

func fullMask(n int) *roaring.Bitmap {
	mask := roaring.New()
	mask.AddRange(0, uint64(n))
	return mask
}

func TestSelectorFarthestFirst(t *testing.T) {
	// Base palette at the origin; three candidates tied at distance 10.
	// The lowest index must win the tie.
	coords := makeCoords([][3]float64{
		{0, 0, 0},
		{10, 0, 0},
		{0, 10, 0},
		{0, 0, 10},
	})
	sel := NewSelector(coords, fullMask(4), []cam02.JAB{{J: 0, A: 0, B: 0}})

	idx, chosen, err := sel.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, cam02.JAB{J: 10, A: 0, B: 0}, chosen)
}

func TestSelectorNeverRepeats(t *testing.T) {
	coords := makeCoords([][3]float64{
		{0, 0, 0}, {1, 0, 0}, {5, 0, 0}, {9, 0, 0}, {10, 0, 0},
	})
	sel := NewSelector(coords, fullMask(5), []cam02.JAB{{J: 0}})

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		idx, _, err := sel.Next()
		require.NoError(t, err)
		assert.False(t, seen[idx], "index %d selected twice", idx)
		seen[idx] = true
	}
	_, _, err := sel.Next()
	require.Error(t, err)
}

func TestSelectorExhaustionError(t *testing.T) {
	coords := makeCoords([][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	mask := roaring.New()
	mask.Add(0)
	mask.Add(2)
	sel := NewSelector(coords, mask, []cam02.JAB{{J: 50}})

	for i := 0; i < 2; i++ {
		_, _, err := sel.Next()
		require.NoError(t, err)
	}
	_, _, err := sel.Next()
	require.Error(t, err)
	var ice *InsufficientCandidatesError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, 2, ice.Eligible)
}

func TestSelectorSkipsIneligible(t *testing.T) {
	coords := makeCoords([][3]float64{
		{0, 0, 0},
		{100, 0, 0}, // farthest, but masked out
		{10, 0, 0},
	})
	mask := roaring.New()
	mask.Add(0)
	mask.Add(2)
	sel := NewSelector(coords, mask, []cam02.JAB{{J: 0}})

	idx, _, err := sel.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestSelectorDefaultsToWhiteSeed(t *testing.T) {
	// Without seeds the selector seeds itself with white, so the first
	// pick is the candidate farthest from white, not an arbitrary one.
	coords := makeCoords([][3]float64{
		{99, 0, 0}, // close to white
		{5, 0, 0},  // dark, far from white
	})
	sel := NewSelector(coords, fullMask(2), nil)

	idx, _, err := sel.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

// minDistTo computes the exact minimum distance from candidate i to a set of
// reference points, for brute-force verification.
func minDistTo(coords []float32, i int, refs []cam02.JAB) float64 {
	c := cam02.JAB{
		J: float64(coords[3*i]),
		A: float64(coords[3*i+1]),
		B: float64(coords[3*i+2]),
	}
	best := math.Inf(1)
	for _, r := range refs {
		if d := cam02.Distance(c, r); d < best {
			best = d
		}
	}
	return best
}

func TestSelectorGreedyCorrectness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([][3]float64, 40)
	for i := range points {
		points[i] = [3]float64{rng.Float64() * 100, rng.Float64()*80 - 40, rng.Float64()*80 - 40}
	}
	coords := makeCoords(points)

	seeds := []cam02.JAB{{J: 50, A: 0, B: 0}}
	sel := NewSelector(coords, fullMask(len(points)), seeds)

	refs := append([]cam02.JAB(nil), seeds...)
	picked := make(map[int]bool)
	for step := 0; step < 20; step++ {
		idx, chosen, err := sel.Next()
		require.NoError(t, err)

		// The chosen candidate's min distance to the reference set must
		// be maximal over all unselected candidates. Distances are
		// computed in float32 inside the selector, so allow a hair of
		// slack when comparing against the float64 brute force.
		chosenDist := minDistTo(coords, idx, refs)
		for j := range points {
			if j == idx || picked[j] {
				continue
			}
			assert.LessOrEqual(t, minDistTo(coords, j, refs), chosenDist+1e-4,
				"step %d: candidate %d beats chosen %d", step, j, idx)
		}

		picked[idx] = true
		refs = append(refs, chosen)
	}
}

func TestSelectorDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	points := make([][3]float64, 30)
	for i := range points {
		points[i] = [3]float64{rng.Float64() * 100, rng.Float64()*60 - 30, rng.Float64()*60 - 30}
	}
	coords := makeCoords(points)
	seeds := []cam02.JAB{{J: 100, A: 0, B: 0}}

	a := NewSelector(coords, fullMask(len(points)), seeds)
	b := NewSelector(coords, fullMask(len(points)), seeds)
	for i := 0; i < len(points); i++ {
		ai, ac, aerr := a.Next()
		bi, bc, berr := b.Next()
		require.NoError(t, aerr)
		require.NoError(t, berr)
		assert.Equal(t, ai, bi, "step %d", i)
		assert.Equal(t, ac, bc, "step %d", i)
	}
}

func TestSelectorRemaining(t *testing.T) {
	coords := makeCoords([][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}})
	sel := NewSelector(coords, fullMask(3), []cam02.JAB{{J: 50}})
	assert.Equal(t, 3, sel.Eligible())
	assert.Equal(t, 3, sel.Remaining())

	_, _, err := sel.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, sel.Remaining())
	assert.Equal(t, 3, sel.Eligible())
}
