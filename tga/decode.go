package tga

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"
)

// Grid is a decoded image. Pix holds Width*Height pixels in the order they
// were stored in the file.
type Grid struct {
	Header
	Pix []color.NRGBA
}

// At returns the pixel at column x of stored row y.
func (g *Grid) At(x, y int) color.NRGBA {
	return g.Pix[y*g.Width+x]
}

// NRGBA copies the grid into an *image.NRGBA without reordering the rows.
func (g *Grid) NRGBA() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, c := range g.Pix {
		p := m.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
	return m
}

// Bytes returns the pixels as consecutive R, G, B, A bytes.
func (g *Grid) Bytes() []byte {
	return g.NRGBA().Pix
}

// minimumSize is the fewest bytes of pixel data that could describe the
// image. It is computed in int64 as w*h*bpp can exceed a 32-bit int.
func minimumSize(h Header, bypp int) int64 {
	pixels := int64(h.Width) * int64(h.Height)
	if h.Type == RLERGB {
		// Every packet covers at most maxPacket pixels
		return (pixels + maxPacket - 1) / maxPacket * int64(1+bypp)
	}
	return pixels * int64(bypp)
}

// DecodeBytes decodes the Targa image held in b.
func DecodeBytes(b []byte) (*Grid, error) {
	c := &cursor{b: b}

	h, err := readHeader(c)
	if err != nil {
		return nil, err
	}

	if !h.valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}

	bypp, err := bytesPerPixel(h.Depth)
	if err != nil {
		return nil, err
	}

	// Refuse to allocate a grid the remaining data can't possibly fill. A
	// short stream is reported as truncated even if its first packet would
	// also overflow the grid.
	if n := minimumSize(h, bypp); int64(c.remaining()) < n {
		return nil, fmt.Errorf("%w: need at least %d bytes of pixel data, have %d", ErrTruncated, n, c.remaining())
	}

	g := &Grid{
		Header: h,
		Pix:    make([]color.NRGBA, h.pixels()),
	}

	if h.Type == RLERGB {
		if err := decodeRLE(c, g.Pix, h.Depth); err != nil {
			return nil, err
		}
		return g, nil
	}

	for i := range g.Pix {
		if g.Pix[i], err = readPixel(c, h.Depth); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// DecodeHeader parses and validates the header without decoding any pixels.
func DecodeHeader(b []byte) (Header, error) {
	h, err := readHeader(&cursor{b: b})
	if err != nil {
		return h, err
	}
	if !h.valid() {
		return h, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}
	if _, err := bytesPerPixel(h.Depth); err != nil {
		return h, err
	}
	return h, nil
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads a Targa image from r and returns it as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	g, err := DecodeBytes(b)
	if err != nil {
		return nil, err
	}

	return g.NRGBA(), nil
}

// DecodeConfig returns the color model and dimensions of a Targa image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var b [headerSize]byte
	if err := readFull(r, b[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return image.Config{}, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		return image.Config{}, err
	}

	h, err := DecodeHeader(b[:])
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}
