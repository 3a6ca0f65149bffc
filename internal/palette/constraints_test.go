package palette

import (
	"testing"

	"github.com/jmylchreest/glasbey/internal/colour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintsValidate(t *testing.T) {
	tests := []struct {
		name    string
		cons    Constraints
		wantErr bool
	}{
		{"defaults", DefaultConstraints(), false},
		{"narrow lightness", constraintsWith(func(c *Constraints) { c.Lightness = Range{Min: 20, Max: 80} }), false},
		{"inverted lightness", constraintsWith(func(c *Constraints) { c.Lightness = Range{Min: 80, Max: 20} }), true},
		{"lightness above domain", constraintsWith(func(c *Constraints) { c.Lightness = Range{Min: 0, Max: 120} }), true},
		{"negative lightness", constraintsWith(func(c *Constraints) { c.Lightness = Range{Min: -5, Max: 50} }), true},
		{"inverted chroma", constraintsWith(func(c *Constraints) { c.Chroma = Range{Min: 60, Max: 10} }), true},
		{"hue wraparound is legal", constraintsWith(func(c *Constraints) { c.Hue = HueRange{Start: 300, End: 60} }), false},
		{"hue out of domain", constraintsWith(func(c *Constraints) { c.Hue = HueRange{Start: 0, End: 400} }), true},
		{"negative hue", constraintsWith(func(c *Constraints) { c.Hue = HueRange{Start: -10, End: 60} }), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cons.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var ce *ConfigError
				assert.ErrorAs(t, err, &ce)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func constraintsWith(mutate func(*Constraints)) Constraints {
	c := DefaultConstraints()
	mutate(&c)
	return c
}

func TestHueRangeContains(t *testing.T) {
	plain := HueRange{Start: 30, End: 90}
	assert.True(t, plain.contains(30))
	assert.True(t, plain.contains(60))
	assert.True(t, plain.contains(90))
	assert.False(t, plain.contains(91))
	assert.False(t, plain.contains(350))

	wrap := HueRange{Start: 300, End: 60}
	assert.True(t, wrap.contains(300))
	assert.True(t, wrap.contains(350))
	assert.True(t, wrap.contains(0))
	assert.True(t, wrap.contains(60))
	assert.False(t, wrap.contains(61))
	assert.False(t, wrap.contains(299))
	assert.False(t, wrap.contains(180))
}

func TestComputeMaskLightness(t *testing.T) {
	coords := makeCoords([][3]float64{
		{10, 0, 0},
		{50, 0, 0},
		{90, 0, 0},
	})
	mask, err := ComputeMask(coords, constraintsWith(func(c *Constraints) {
		c.Lightness = Range{Min: 40, Max: 60}
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, mask.ToArray())
}

func TestComputeMaskChromaAndHue(t *testing.T) {
	coords := makeCoords([][3]float64{
		{50, 30, 0},   // hue 0, chroma 30
		{50, 0, 30},   // hue 90
		{50, -30, 0},  // hue 180
		{50, 0, -30},  // hue 270
		{50, 2, 0},    // hue 0, chroma 2
		{50, 21, -21}, // hue 315
	})

	mask, err := ComputeMask(coords, constraintsWith(func(c *Constraints) {
		c.Chroma = Range{Min: 10, Max: 100}
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3, 5}, mask.ToArray(), "low-chroma point drops out")

	mask, err = ComputeMask(coords, constraintsWith(func(c *Constraints) {
		c.Hue = HueRange{Start: 45, End: 200}
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, mask.ToArray())

	// Wraparound picks up hue 270, 315 and 0 but not 90 or 180.
	mask, err = ComputeMask(coords, constraintsWith(func(c *Constraints) {
		c.Hue = HueRange{Start: 250, End: 10}
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 3, 4, 5}, mask.ToArray())
}

func TestComputeMaskPartialConstraints(t *testing.T) {
	// Supplying one range must leave the others unrestricted, not zero.
	coords := makeCoords([][3]float64{
		{50, 30, 0},
		{60, 0, -40},
	})

	mask, err := ComputeMask(coords, Constraints{Lightness: Range{Min: 0, Max: 100}})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), mask.GetCardinality(), "unset chroma and hue ranges must not exclude chromatic points")

	mask, err = ComputeMask(coords, Constraints{Chroma: Range{Min: 10, Max: 100}})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), mask.GetCardinality())

	mask, err = ComputeMask(coords, Constraints{Hue: HueRange{Start: 250, End: 290}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, mask.ToArray())
}

func TestComputeMaskNoBlack(t *testing.T) {
	black := colour.ToUCS(colour.RGB{})
	coords := makeCoords([][3]float64{
		{black.J, black.A, black.B}, // black itself
		{black.J + 30, black.A, black.B},
		{black.J + 60, black.A, black.B},
	})

	mask, err := ComputeMask(coords, Constraints{NoBlack: true})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2}, mask.ToArray(), "points within the near-black distance drop out")

	mask, err = ComputeMask(coords, Constraints{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), mask.GetCardinality())
}

func TestComputeMaskInvalidConstraints(t *testing.T) {
	coords := makeCoords([][3]float64{{50, 0, 0}})
	_, err := ComputeMask(coords, constraintsWith(func(c *Constraints) {
		c.Lightness = Range{Min: 90, Max: 10}
	}))
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
}
