package tga

import (
	"fmt"
	"image/color"
)

type packetKind int

const (
	rawPacket packetKind = iota
	runPacket
)

type packet struct {
	kind  packetKind
	count int
}

func readPacket(c *cursor) (packet, error) {
	b, err := c.readByte()
	if err != nil {
		return packet{}, err
	}

	p := packet{
		kind:  rawPacket,
		count: int(b&(maxPacket-1)) + 1,
	}
	if b&maxPacket != 0 {
		p.kind = runPacket
	}
	return p, nil
}

// decodeRLE expands run-length and raw packets into exactly len(pix) pixels.
// A packet that would overflow pix is an error and nothing past the last
// needed packet is read.
func decodeRLE(c *cursor, pix []color.NRGBA, depth int) error {
	for filled := 0; filled < len(pix); {
		p, err := readPacket(c)
		if err != nil {
			return err
		}

		if filled+p.count > len(pix) {
			return fmt.Errorf("%w: packet of %d pixels at pixel %d overflows %d", ErrCorruptStream, p.count, filled, len(pix))
		}

		switch p.kind {
		case runPacket:
			px, err := readPixel(c, depth)
			if err != nil {
				return err
			}
			for i := filled; i < filled+p.count; i++ {
				pix[i] = px
			}
		case rawPacket:
			for i := filled; i < filled+p.count; i++ {
				if pix[i], err = readPixel(c, depth); err != nil {
					return err
				}
			}
		}

		filled += p.count
	}

	return nil
}
