/*
Package palette reduces a true-color image to a small indexed palette.

If the image already uses no more than the requested number of colors the
palette is exact, otherwise it is built with a median cut quantizer.
*/
package palette

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// MinColors is the smallest palette Reduce will build.
	MinColors = 2
	// MaxColors is the largest palette an image.Paletted can index.
	MaxColors = 256
)

var errColors = errors.New("palette: number of colors must be between 2 and 256")

func countColors(m image.Image, limit int) map[color.Color]int {
	colors := make(map[color.Color]int)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			colors[color.NRGBAModel.Convert(m.At(x, y))]++
			if len(colors) > limit {
				return colors
			}
		}
	}
	return colors
}

// Exact returns the distinct colors of m, or false if there are more than
// limit of them.
func Exact(m image.Image, limit int) (color.Palette, bool) {
	h := countColors(m, limit)
	if len(h) > limit {
		return nil, false
	}
	p := make(color.Palette, 0, len(h))
	for c := range h {
		p = append(p, c)
	}
	return p, true
}

// Reduce converts m to an image using at most colors colors.
func Reduce(m image.Image, colors int) (*image.Paletted, error) {
	if colors < MinColors || colors > MaxColors {
		return nil, errColors
	}

	b := m.Bounds()

	p, ok := Exact(m, colors)
	if !ok {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, colors), m)
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm, nil
}
