package tga

import "fmt"

// cursor is a forward only reader over an in-memory buffer. Every read is
// bounds checked and fails with ErrTruncated instead of running off the end.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) remaining() int {
	return len(c.b) - c.off
}

func (c *cursor) next(n int) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, c.off, c.remaining())
	}
	p := c.b[c.off : c.off+n]
	c.off += n
	return p, nil
}

func (c *cursor) readByte() (byte, error) {
	p, err := c.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (c *cursor) skip(n int) error {
	_, err := c.next(n)
	return err
}
