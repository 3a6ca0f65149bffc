// Package colour provides the RGB palette types, the palette text format,
// and conversion between RGB and the CAM02-UCS perceptual space.
package colour

import (
	"fmt"

	"github.com/jmylchreest/glasbey/internal/cam02"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel sRGB triplet.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the colour in the palette text format, e.g. "228,26,28".
func (c RGB) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// FromInts builds an RGB from untrusted integer components, rejecting values
// outside [0, 255].
func FromInts(r, g, b int) (RGB, error) {
	for _, v := range [3]int{r, g, b} {
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("component %d out of range [0,255]", v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// ToUCS converts an sRGB triplet to its CAM02-UCS coordinate. The pipeline is
// gamma decode -> linear RGB -> XYZ (D65) -> CIECAM02 -> UCS.
func ToUCS(c RGB) cam02.JAB {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	x, y, z := col.Xyz()
	return cam02.Forward(x*100, y*100, z*100)
}

// UCSToRGB converts a CAM02-UCS coordinate back to normalised sRGB
// components. The result is not clamped: coordinates outside the sRGB gamut
// yield components below 0 or above 1.
func UCSToRGB(j cam02.JAB) (r, g, b float64) {
	x, y, z := cam02.Inverse(j)
	col := colorful.Xyz(x/100, y/100, z/100)
	return col.R, col.G, col.B
}

// UCSToRGB255 converts a CAM02-UCS coordinate to an 8-bit triplet, rounding
// and clamping each component into [0, 255].
func UCSToRGB255(j cam02.JAB) RGB {
	r, g, b := UCSToRGB(j)
	return RGB{R: toByte(r), G: toByte(g), B: toByte(b)}
}

func toByte(v float64) uint8 {
	s := v*255 + 0.5
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}
