package tga

import (
	"fmt"
	"image/color"
	"math"
)

// Each 5-bit channel is scaled as v/32 rather than v/31 so full intensity
// comes out as 247, not 255.
var scale5 = func() (t [32]uint8) {
	for i := range t {
		t[i] = uint8(math.Round(float64(i) / 32 * 255))
	}
	return
}()

func bytesPerPixel(depth int) (int, error) {
	switch depth {
	case 16, 24, 32:
		return depth >> 3, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}
}

// readPixel consumes one pixel of the given depth from c.
func readPixel(c *cursor, depth int) (color.NRGBA, error) {
	n, err := bytesPerPixel(depth)
	if err != nil {
		return color.NRGBA{}, err
	}

	p, err := c.next(n)
	if err != nil {
		return color.NRGBA{}, err
	}

	return unpack(p), nil
}

// unpack converts a stored BGR(A) or packed 16-bit pixel. The length of p
// selects the layout.
func unpack(p []byte) color.NRGBA {
	switch len(p) {
	case 4:
		return color.NRGBA{p[2], p[1], p[0], p[3]}
	case 3:
		return color.NRGBA{p[2], p[1], p[0], 0xff}
	default:
		// Packed as ARRRRRGG GGGBBBBB, low byte first. The attribute bit
		// is ignored and the pixel is always opaque.
		lo, hi := p[0], p[1]
		return color.NRGBA{
			scale5[hi&0x7f>>2],
			scale5[hi&0x03<<3|lo>>5],
			scale5[lo&0x1f],
			0xff,
		}
	}
}
