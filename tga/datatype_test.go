package tga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDataType(t *testing.T) {
	tables := []struct {
		code byte
		want DataType
	}{
		{0, Empty},
		{1, UncompressedColorMapped},
		{2, UncompressedRGB},
		{3, UncompressedBW},
		{9, RLEColorMapped},
		{10, RLERGB},
		{11, CompressedBW},
		{32, CompressedColorMapped},
		{33, CompressedColorMapped4},
		{4, Empty},
		{34, Empty},
		{255, Empty},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, parseDataType(table.code), "code %d", table.code)
	}
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "Runlength encoded RGB images", RLERGB.String())
	assert.Equal(t, "No image data included", Empty.String())
	assert.Equal(t, "Unknown", DataType(42).String())
}

func TestReadHeader(t *testing.T) {
	c := &cursor{b: append(header(10, 320, 200, 32), 0xaa)}

	h, err := readHeader(c)
	if assert.NoError(t, err) {
		assert.Equal(t, Header{RLERGB, 320, 200, 32}, h)
		assert.Equal(t, headerSize, c.off)
	}
}
