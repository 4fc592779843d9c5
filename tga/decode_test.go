package tga

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(code byte, width, height int, depth byte) []byte {
	b := make([]byte, headerSize)
	b[typeOffset] = code
	binary.LittleEndian.PutUint16(b[12:], uint16(width))
	binary.LittleEndian.PutUint16(b[14:], uint16(height))
	b[16] = depth
	return b
}

func build(h []byte, data ...[]byte) []byte {
	return append(h, bytes.Join(data, nil)...)
}

func TestDecodeBytesFlat(t *testing.T) {
	tables := []struct {
		name  string
		depth byte
		data  []byte
		want  color.NRGBA
	}{
		{"24-bit", 24, []byte{0x10, 0x20, 0x30}, color.NRGBA{0x30, 0x20, 0x10, 0xff}},
		{"32-bit", 32, []byte{0x00, 0x00, 0xff, 0x80}, color.NRGBA{0xff, 0x00, 0x00, 0x80}},
		{"16-bit white", 16, []byte{0xff, 0x7f}, color.NRGBA{247, 247, 247, 0xff}},
		{"16-bit red", 16, []byte{0x00, 0x7c}, color.NRGBA{247, 0, 0, 0xff}},
		{"16-bit green", 16, []byte{0xe0, 0x03}, color.NRGBA{0, 247, 0, 0xff}},
		{"16-bit blue", 16, []byte{0x1f, 0x00}, color.NRGBA{0, 0, 247, 0xff}},
		{"16-bit attribute ignored", 16, []byte{0x00, 0x80}, color.NRGBA{0, 0, 0, 0xff}},
		{"16-bit half", 16, []byte{0x10, 0x42}, color.NRGBA{128, 128, 128, 0xff}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			g, err := DecodeBytes(build(header(2, 1, 1, table.depth), table.data))
			require.NoError(t, err)
			assert.Equal(t, Header{UncompressedRGB, 1, 1, int(table.depth)}, g.Header)
			assert.Equal(t, []color.NRGBA{table.want}, g.Pix)
		})
	}
}

func TestDecodeBytesRowOrder(t *testing.T) {
	b := build(header(2, 2, 2, 24),
		[]byte{1, 0, 0}, []byte{2, 0, 0},
		[]byte{3, 0, 0}, []byte{4, 0, 0},
	)

	g, err := DecodeBytes(b)
	require.NoError(t, err)
	require.Len(t, g.Pix, 4)

	for i := range g.Pix {
		assert.Equal(t, uint8(i+1), g.Pix[i].B)
	}
	assert.Equal(t, uint8(3), g.At(0, 1).B)

	m := g.NRGBA()
	assert.Equal(t, image.Rect(0, 0, 2, 2), m.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 2, 0xff}, m.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{0, 0, 4, 0xff}, m.NRGBAAt(1, 1))
	assert.Equal(t, m.Pix, g.Bytes())
}

func TestDecodeBytesUnsupportedTypesReadFlat(t *testing.T) {
	for _, code := range []byte{0, 1, 3, 9, 11, 32, 33, 255} {
		g, err := DecodeBytes(build(header(code, 1, 1, 24), []byte{1, 2, 3}))
		require.NoError(t, err)
		assert.Equal(t, []color.NRGBA{{3, 2, 1, 0xff}}, g.Pix)
	}
}

func solid(c color.NRGBA, n int) []color.NRGBA {
	pix := make([]color.NRGBA, n)
	for i := range pix {
		pix[i] = c
	}
	return pix
}

func TestDecodeBytesRLE(t *testing.T) {
	tables := []struct {
		name   string
		width  int
		height int
		depth  byte
		data   [][]byte
		want   []color.NRGBA
	}{
		{
			"run",
			4, 1, 24,
			[][]byte{{0x83, 10, 20, 30}},
			solid(color.NRGBA{30, 20, 10, 0xff}, 4),
		},
		{
			"raw",
			3, 1, 24,
			[][]byte{{0x02, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
			[]color.NRGBA{{3, 2, 1, 0xff}, {6, 5, 4, 0xff}, {9, 8, 7, 0xff}},
		},
		{
			"mixed 32-bit",
			2, 2, 32,
			[][]byte{{0x81, 1, 2, 3, 4}, {0x01, 5, 6, 7, 8, 9, 10, 11, 12}},
			[]color.NRGBA{{3, 2, 1, 4}, {3, 2, 1, 4}, {7, 6, 5, 8}, {11, 10, 9, 12}},
		},
		{
			"16-bit run",
			2, 1, 16,
			[][]byte{{0x81, 0x1f, 0x00}},
			solid(color.NRGBA{0, 0, 247, 0xff}, 2),
		},
		{
			"maximum run",
			16, 8, 24,
			[][]byte{{0xff, 0, 0, 0xff}},
			solid(color.NRGBA{0xff, 0, 0, 0xff}, 128),
		},
		{
			"packet spans rows",
			3, 2, 24,
			[][]byte{{0x83, 1, 1, 1}, {0x81, 2, 2, 2}},
			append(solid(color.NRGBA{1, 1, 1, 0xff}, 4), solid(color.NRGBA{2, 2, 2, 0xff}, 2)...),
		},
		{
			"trailing data ignored",
			1, 1, 24,
			[][]byte{{0x00, 1, 2, 3}, {0x85, 0xde, 0xad, 0xbe}},
			[]color.NRGBA{{3, 2, 1, 0xff}},
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			g, err := DecodeBytes(build(header(10, table.width, table.height, table.depth), table.data...))
			require.NoError(t, err)
			assert.Equal(t, RLERGB, g.Type)
			assert.Len(t, g.Pix, table.width*table.height)
			assert.Equal(t, table.want, g.Pix)
		})
	}
}

func TestDecodeRLEStopsAtLastPacket(t *testing.T) {
	c := &cursor{b: []byte{0x81, 1, 2, 3, 0x80}}
	pix := make([]color.NRGBA, 2)
	require.NoError(t, decodeRLE(c, pix, 24))
	assert.Equal(t, 1, c.remaining())
}

func TestDecodeBytesErrors(t *testing.T) {
	tables := []struct {
		name string
		b    []byte
		err  error
	}{
		{"empty", nil, ErrTruncated},
		{"mid header", header(2, 1, 1, 24)[:15], ErrTruncated},
		{"no descriptor", header(2, 1, 1, 24)[:17], ErrTruncated},
		{"mid pixel data", build(header(2, 2, 1, 24), []byte{1, 2, 3, 4, 5}), ErrTruncated},
		{"mid rle packet", build(header(10, 2, 1, 24), []byte{0x01, 1, 2, 3, 4, 5}), ErrTruncated},
		{"missing rle packet", build(header(10, 200, 1, 24), []byte{0xff, 1, 2, 3}, []byte{0x00, 1, 2}), ErrTruncated},
		{"zero width", build(header(2, 0, 1, 24), []byte{1, 2, 3}), ErrInvalidDimensions},
		{"zero height", build(header(2, 1, 0, 24), []byte{1, 2, 3}), ErrInvalidDimensions},
		{"negative width", build(header(2, 0x8000, 1, 24), []byte{1, 2, 3}), ErrInvalidDimensions},
		{"8-bit", build(header(2, 1, 1, 8), []byte{1}), ErrUnsupportedDepth},
		{"15-bit", build(header(2, 1, 1, 15), []byte{1, 2}), ErrUnsupportedDepth},
		{"run overflow", build(header(10, 2, 1, 24), []byte{0x82, 1, 2, 3}), ErrCorruptStream},
		{"short overflowing packet", build(header(10, 2, 2, 24), []byte{0x84}), ErrTruncated},
		{"short overflowing run", build(header(10, 2, 2, 24), []byte{0x84, 1, 2}), ErrTruncated},
		{"raw overflow", build(header(10, 3, 1, 24), []byte{0x81, 1, 2, 3}, []byte{0x01, 1, 2, 3, 4, 5, 6}), ErrCorruptStream},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			g, err := DecodeBytes(table.b)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, table.err), "got %v", err)
		})
	}
}

func TestDecodeBytesIdempotent(t *testing.T) {
	b := build(header(10, 5, 3, 32),
		[]byte{0x84, 1, 2, 3, 4},
		[]byte{0x04, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24},
		[]byte{0x84, 0xff, 0xee, 0xdd, 0xcc},
	)

	g1, err := DecodeBytes(b)
	require.NoError(t, err)
	g2, err := DecodeBytes(b)
	require.NoError(t, err)

	assert.Equal(t, g1, g2)
	assert.Len(t, g1.Pix, 15)
}

func TestDecodeBytesSize(t *testing.T) {
	for _, depth := range []byte{16, 24, 32} {
		for _, dim := range [][2]int{{1, 1}, {7, 3}, {64, 40}} {
			b := build(header(2, dim[0], dim[1], depth), make([]byte, dim[0]*dim[1]*int(depth)/8))
			g, err := DecodeBytes(b)
			require.NoError(t, err)
			assert.Len(t, g.Pix, dim[0]*dim[1])
		}
	}
}

func TestDecode(t *testing.T) {
	b := build(header(2, 2, 1, 32), []byte{1, 2, 3, 4, 5, 6, 7, 8})

	m, err := Decode(bytes.NewReader(b))
	require.NoError(t, err)
	require.IsType(t, &image.NRGBA{}, m)
	assert.Equal(t, color.NRGBA{3, 2, 1, 4}, m.At(0, 0))
	assert.Equal(t, color.NRGBA{7, 6, 5, 8}, m.At(1, 0))

	_, err = Decode(bytes.NewReader(b[:20]))
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(bytes.NewReader(header(10, 64, 40, 24)))
	require.NoError(t, err)
	assert.Equal(t, image.Config{ColorModel: color.NRGBAModel, Width: 64, Height: 40}, cfg)

	_, err = DecodeConfig(bytes.NewReader(header(10, 64, 40, 24)[:10]))
	assert.True(t, errors.Is(err, ErrTruncated))

	_, err = DecodeConfig(bytes.NewReader(header(10, 64, 40, 8)))
	assert.True(t, errors.Is(err, ErrUnsupportedDepth))
}

func TestImageDecodeNotRegistered(t *testing.T) {
	b := build(header(2, 1, 1, 24), []byte{1, 2, 3})

	_, _, err := image.Decode(bytes.NewReader(b))
	assert.Equal(t, image.ErrFormat, err)
}

func TestMinimumSize(t *testing.T) {
	tables := []struct {
		h    Header
		bypp int
		want int64
	}{
		{Header{UncompressedRGB, 32767, 32767, 32}, 4, 32767 * 32767 * 4},
		{Header{RLERGB, 32767, 32767, 32}, 4, (32767*32767 + 127) / 128 * 5},
		{Header{RLERGB, 2, 2, 24}, 3, 4},
		{Header{UncompressedRGB, 3, 2, 16}, 2, 12},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, minimumSize(table.h, table.bypp))
	}
}

func TestDecodeBytesLargest(t *testing.T) {
	g, err := DecodeBytes(build(header(2, 32767, 32767, 32), []byte{1, 2, 3, 4}))
	assert.Nil(t, g)
	assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)
}
