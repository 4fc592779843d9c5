package tga

import "encoding/binary"

// Header holds the fields of the 18 byte Targa header needed to decode the
// pixel data.
type Header struct {
	Type   DataType
	Width  int
	Height int
	Depth  int
}

func readHeader(c *cursor) (Header, error) {
	var h Header

	if err := c.skip(typeOffset); err != nil {
		return h, err
	}

	b, err := c.readByte()
	if err != nil {
		return h, err
	}
	h.Type = parseDataType(b)

	// Color map specification and image origin
	if err := c.skip(colorMapLen); err != nil {
		return h, err
	}

	p, err := c.next(5)
	if err != nil {
		return h, err
	}
	h.Width = int(int16(binary.LittleEndian.Uint16(p[0:2])))
	h.Height = int(int16(binary.LittleEndian.Uint16(p[2:4])))
	h.Depth = int(p[4])

	// Image descriptor
	if err := c.skip(1); err != nil {
		return h, err
	}

	return h, nil
}

func (h Header) valid() bool {
	return h.Width > 0 && h.Height > 0
}

func (h Header) pixels() int {
	return h.Width * h.Height
}
