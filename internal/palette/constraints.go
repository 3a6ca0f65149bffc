// Package palette implements greedy farthest-point palette selection over a
// candidate colour table in CAM02-UCS space.
package palette

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/jmylchreest/glasbey/internal/colour"
)

// NearBlackDistance is the CAM02-UCS distance below which a candidate counts
// as "near black" when black exclusion is enabled.
const NearBlackDistance = 45.0

// Bounds of the physically meaningful constraint domain. Lightness J* spans
// 0..100; chroma above maxChroma is unreachable from the sRGB cube.
const (
	maxLightness = 100.0
	maxChroma    = 150.0
	maxHue       = 360.0
)

// Range is an inclusive interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// HueRange is an inclusive interval of hue angles in degrees. Start > End
// wraps around 360°: eligible hues then lie in [Start, 360) ∪ [0, End].
type HueRange struct {
	Start float64
	End   float64
}

func (h HueRange) contains(v float64) bool {
	if h.Start <= h.End {
		return v >= h.Start && v <= h.End
	}
	return v >= h.Start || v <= h.End
}

// Constraints restricts which candidates are eligible for selection. The
// zero value means unrestricted.
type Constraints struct {
	Lightness Range
	Chroma    Range
	Hue       HueRange
	NoBlack   bool
}

// DefaultConstraints returns the unrestricted constraint set.
func DefaultConstraints() Constraints {
	return Constraints{
		Lightness: Range{Min: 0, Max: maxLightness},
		Chroma:    Range{Min: 0, Max: maxChroma},
		Hue:       HueRange{Start: 0, End: maxHue},
	}
}

// withDefaults maps every unset range to its unrestricted default, so a
// caller constraining one dimension leaves the others open.
func (c Constraints) withDefaults() Constraints {
	if c.Lightness == (Range{}) {
		c.Lightness = Range{Min: 0, Max: maxLightness}
	}
	if c.Chroma == (Range{}) {
		c.Chroma = Range{Min: 0, Max: maxChroma}
	}
	if c.Hue == (HueRange{}) {
		c.Hue = HueRange{Start: 0, End: maxHue}
	}
	return c
}

// Validate reports a ConfigError for inverted ranges or bounds outside the
// valid coordinate domain.
func (c Constraints) Validate() error {
	if c.Lightness.Min > c.Lightness.Max {
		return configErrorf("lightness range min %g > max %g", c.Lightness.Min, c.Lightness.Max)
	}
	if c.Lightness.Min < 0 || c.Lightness.Max > maxLightness {
		return configErrorf("lightness range %g:%g outside [0,%g]", c.Lightness.Min, c.Lightness.Max, maxLightness)
	}
	if c.Chroma.Min > c.Chroma.Max {
		return configErrorf("chroma range min %g > max %g", c.Chroma.Min, c.Chroma.Max)
	}
	if c.Chroma.Min < 0 || c.Chroma.Max > maxChroma {
		return configErrorf("chroma range %g:%g outside [0,%g]", c.Chroma.Min, c.Chroma.Max, maxChroma)
	}
	for _, h := range [2]float64{c.Hue.Start, c.Hue.End} {
		if h < 0 || h > maxHue {
			return configErrorf("hue bound %g outside [0,%g]", h, maxHue)
		}
	}
	return nil
}

// ComputeMask returns the eligibility mask over the candidate coordinates:
// bit i is set when candidate i satisfies the constraints. The mask reflects
// static constraints only; selection progress is tracked by the Selector.
func ComputeMask(coords []float32, c Constraints) (*roaring.Bitmap, error) {
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	black := colour.ToUCS(colour.RGB{})
	bj, ba, bb := float32(black.J), float32(black.A), float32(black.B)

	mask := roaring.New()
	n := len(coords) / 3
	for i := 0; i < n; i++ {
		j := float64(coords[3*i])
		a := float64(coords[3*i+1])
		b := float64(coords[3*i+2])

		if !c.Lightness.contains(j) {
			continue
		}
		if !c.Chroma.contains(math.Hypot(a, b)) {
			continue
		}
		h := math.Atan2(b, a) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
		if !c.Hue.contains(h) {
			continue
		}
		if c.NoBlack {
			dj := coords[3*i] - bj
			da := coords[3*i+1] - ba
			db := coords[3*i+2] - bb
			if math.Sqrt(float64(dj*dj+da*da+db*db)) <= NearBlackDistance {
				continue
			}
		}
		mask.Add(uint32(i))
	}
	return mask, nil
}
