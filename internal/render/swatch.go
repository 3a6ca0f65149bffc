// Package render draws palette swatch images for previewing generated
// palettes.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/jmylchreest/glasbey/internal/colour"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls swatch geometry.
type Options struct {
	Width     int  // stripe width in pixels, default 180
	RowHeight int  // stripe height in pixels, default 20
	Labels    bool // draw the hex code on each stripe
}

const (
	defaultWidth     = 180
	defaultRowHeight = 20
)

// Swatch renders one horizontal stripe per palette colour, top to bottom in
// palette order.
func Swatch(palette []colour.RGB, opts Options) *image.RGBA {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	rowHeight := opts.RowHeight
	if rowHeight <= 0 {
		rowHeight = defaultRowHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, width, rowHeight*len(palette)))
	for i, c := range palette {
		row := image.Rect(0, i*rowHeight, width, (i+1)*rowHeight)
		fill := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		draw.Draw(img, row, image.NewUniform(fill), image.Point{}, draw.Src)
		if opts.Labels {
			drawLabel(img, row, c)
		}
	}
	return img
}

// drawLabel writes the hex code onto a stripe in whichever of black or white
// contrasts better with it.
func drawLabel(img *image.RGBA, row image.Rectangle, c colour.RGB) {
	fg := color.Gray{Y: 0}
	if colour.Luminance(c) < 0.45 {
		fg = color.Gray{Y: 255}
	}
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot: fixed.P(
			row.Min.X+4,
			row.Min.Y+(row.Dy()+face.Ascent)/2,
		),
	}
	d.DrawString(c.Hex())
}

// WritePNG encodes the image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
