package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jmylchreest/glasbey/internal/colour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwatchGeometry(t *testing.T) {
	palette := []colour.RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}
	img := Swatch(palette, Options{})

	bounds := img.Bounds()
	assert.Equal(t, 180, bounds.Dx())
	assert.Equal(t, 60, bounds.Dy())
}

func TestSwatchStripeColours(t *testing.T) {
	palette := []colour.RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 0, B: 255},
	}
	img := Swatch(palette, Options{Width: 100, RowHeight: 10})

	// Sample away from the label area on the left.
	r, g, b, a := img.At(95, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)

	_, _, b2, _ := img.At(95, 15).RGBA()
	assert.Equal(t, uint32(0xffff), b2)
}

func TestSwatchLabelsContrast(t *testing.T) {
	// A dark stripe gets a light label pixel somewhere in the text area.
	img := Swatch([]colour.RGB{{R: 10, G: 10, B: 10}}, Options{Labels: true})

	found := false
	for x := 0; x < 60 && !found; x++ {
		for y := 0; y < 20 && !found; y++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r > 0x8000 {
				found = true
			}
		}
	}
	assert.True(t, found, "label glyphs must be drawn in a contrasting colour")
}

func TestWritePNG(t *testing.T) {
	img := Swatch([]colour.RGB{{R: 1, G: 2, B: 3}}, Options{})

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
